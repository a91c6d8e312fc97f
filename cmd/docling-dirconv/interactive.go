// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prof-ramos/docling-diretorio/internal/batch"
	"github.com/prof-ramos/docling-diretorio/internal/docling"
	"github.com/prof-ramos/docling-diretorio/internal/execx"
	"github.com/prof-ramos/docling-diretorio/internal/prompt"
	"github.com/prof-ramos/docling-diretorio/pkg/types"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Prompt for a directory and convert it under <source>/output",
	Long: `Interactive asks for a directory on the terminal, converts every
supported file in it with docling, and writes artifacts under
<source>/output. Failures are listed on the console; no report file is
written.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	pal := palette()

	fmt.Fprintln(os.Stdout, pal.Cyan("Interactive directory conversion"))
	fmt.Fprintln(os.Stdout, "Processes supported files with docling.")
	fmt.Fprintln(os.Stdout)

	resolver := &prompt.Resolver{
		Text:       prompt.NewTextPrompter(os.Stdin, os.Stdout, "Directory path to process:"),
		Out:        os.Stdout,
		Palette:    pal,
		RequireDir: true,
	}
	source, err := resolver.Resolve("")
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			fmt.Fprintln(os.Stdout, pal.Yellow("\nOperation cancelled by user."))
			return nil
		}
		return err
	}

	fmt.Fprintln(os.Stdout, pal.Green("Selected directory: "+source))

	cfg := types.ConvertConfig{
		Source:     source,
		OutputRoot: filepath.Join(source, "output"),
		ReportFile: false,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sum, err := batch.Run(ctx, cfg, batch.Deps{
		Converter: docling.NewRunner(execx.OSInvoker{}),
		Progress:  progress(),
		Palette:   pal,
		Out:       os.Stdout,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stdout, pal.Yellow("\nOperation cancelled by user."))
			return nil
		}
		return err
	}

	if sum.HasFailures() {
		fmt.Fprintln(os.Stdout, pal.Red(fmt.Sprintf("Processing finished with %d failure(s).", sum.Failed)))
		for _, f := range sum.Failures {
			fmt.Fprintln(os.Stdout, "  - "+f)
		}
		return nil
	}

	if sum.Total() > 0 {
		fmt.Fprintln(os.Stdout, pal.Green("Processing completed successfully!"))
	}
	return nil
}
