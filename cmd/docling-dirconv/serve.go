// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prof-ramos/docling-diretorio/internal/docling"
	"github.com/prof-ramos/docling-diretorio/internal/execx"
	"github.com/prof-ramos/docling-diretorio/internal/webui"
	"github.com/prof-ramos/docling-diretorio/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long: `Serve starts the web front-end: a form for converting a local
directory and an upload form that stages files into a temporary directory
before conversion. Conversions run through the batch driver invoked as a
subprocess of this binary.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	addr, _ := cmd.Flags().GetString("addr")
	if !cmd.Flags().Changed("addr") {
		if v := viper.GetString("addr"); v != "" {
			addr = v
		} else if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return err
	}

	inv := execx.OSInvoker{}
	srv, err := webui.New(webui.Options{
		Config: types.ServeConfig{
			Addr:                addr,
			InstallCheckTimeout: 10 * time.Second,
		},
		Version: version,
		Exe:     exe,
		Invoker: inv,
		Checker: docling.NewRunner(inv),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return srv.Start()
}
