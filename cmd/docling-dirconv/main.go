// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docling-dirconv CLI: batch and
// interactive front-ends plus a web interface around the externally
// installed docling document converter.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prof-ramos/docling-diretorio/internal/ui"
)

// version is set at build time via ldflags.
var version = "dev"

// exitError carries a distinct process exit code through cobra to main.
// Code 1 means the source path could not be resolved; code 2 means one or
// more files failed conversion.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// rootCmd is the base command for the docling-dirconv CLI.
var rootCmd = &cobra.Command{
	Use:   "docling-dirconv",
	Short: "Batch front-ends for the docling document converter",
	Long: `docling-dirconv walks a file or directory tree, invokes the globally
installed docling CLI for every supported document, image, or audio file,
and mirrors the source directory structure under an output root. Failures
are collected into a flat report instead of aborting the run.

Front-ends are subcommands: convert (batch driver), interactive (prompted
directory conversion), serve (web interface), and formats (supported
extension list).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docling-dirconv.yaml or ~/.config/docling-dirconv/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docling-dirconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docling-dirconv"))
		}
	}

	viper.SetEnvPrefix("DOCLING_DIRCONV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stderrIsTerminal reports whether stderr is attached to a character device.
func stderrIsTerminal() bool {
	info, err := os.Stderr.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// palette picks colored output when stderr is a terminal and NO_COLOR is
// unset, plain text otherwise.
func palette() ui.Palette {
	if os.Getenv("NO_COLOR") != "" || !stderrIsTerminal() {
		return ui.PlainPalette{}
	}
	return ui.ANSIPalette{}
}

// progress picks a terminal progress bar when one can render, a line-based
// fallback otherwise.
func progress() ui.Progress {
	if stderrIsTerminal() {
		return &ui.BarProgress{W: os.Stderr}
	}
	return ui.NoopProgress{W: os.Stderr}
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var xerr *exitError
	if errors.As(err, &xerr) {
		if xerr.msg != "" {
			fmt.Fprintln(os.Stderr, xerr.msg)
		}
		os.Exit(xerr.code)
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
