// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prof-ramos/docling-diretorio/internal/batch"
	"github.com/prof-ramos/docling-diretorio/internal/docling"
	"github.com/prof-ramos/docling-diretorio/internal/execx"
	"github.com/prof-ramos/docling-diretorio/internal/prompt"
	"github.com/prof-ramos/docling-diretorio/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [source]",
	Short: "Convert a file or directory tree with docling",
	Long: `Convert walks the source (a single file, or a directory traversed
recursively), invokes docling for every supported file, and mirrors the
source structure under the output root. When the source argument is
omitted the operator is prompted for it.

Exit codes: 0 = success (including nothing to do), 1 = source path
missing, 2 = one or more files failed conversion.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("output", "docling-output", "directory for converted artifacts")
	convertCmd.Flags().String("to", "", "optional docling output format (e.g. md, json)")
	convertCmd.Flags().Bool("skip-existing", false, "skip files whose destination already holds an artifact with the same stem")
	convertCmd.Flags().Bool("verbose", false, "print docling stdout/stderr for every processed file")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	pal := palette()
	inv := execx.OSInvoker{}

	output, _ := cmd.Flags().GetString("output")
	if !cmd.Flags().Changed("output") {
		if v := viper.GetString("output"); v != "" {
			output = v
		}
	}
	format, _ := cmd.Flags().GetString("to")
	if !cmd.Flags().Changed("to") {
		if v := viper.GetString("to"); v != "" {
			format = v
		}
	}
	skipExisting, _ := cmd.Flags().GetBool("skip-existing")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var candidate string
	if len(args) > 0 {
		candidate = args[0]
	}

	resolver := &prompt.Resolver{
		Graphical: prompt.NewZenityPrompter(inv, "Source path to convert:"),
		Text:      prompt.NewTextPrompter(os.Stdin, os.Stderr, "Source path to convert?"),
		Out:       os.Stderr,
		Palette:   pal,
	}
	source, err := resolver.Resolve(candidate)
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return &exitError{code: 1, msg: pal.Yellow("Operation cancelled by user.")}
		}
		var nf *prompt.NotFoundError
		if errors.As(err, &nf) {
			return &exitError{code: 1, msg: pal.Red(err.Error())}
		}
		return err
	}

	outputRoot, err := prompt.Normalize(output)
	if err != nil {
		return err
	}

	cfg := types.ConvertConfig{
		Source:       source,
		OutputRoot:   outputRoot,
		OutputFormat: format,
		SkipExisting: skipExisting,
		Verbose:      verbose,
		ReportFile:   true,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sum, err := batch.Run(ctx, cfg, batch.Deps{
		Converter: docling.NewRunner(inv),
		Progress:  progress(),
		Palette:   pal,
		Out:       os.Stderr,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return &exitError{code: 1, msg: pal.Yellow("\nOperation cancelled by user.")}
		}
		return &exitError{code: 1, msg: pal.Red(err.Error())}
	}

	if sum.HasFailures() {
		return &exitError{
			code: 2,
			msg: pal.Red(fmt.Sprintf("Finished with %d failure(s). See %s for details.",
				sum.Failed, sum.ReportPath)),
		}
	}

	fmt.Fprintln(os.Stdout, pal.Green("Conversion completed successfully."))
	return nil
}
