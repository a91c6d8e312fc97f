// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch implements the conversion driver: enumerate the source,
// invoke docling once per file, mirror the directory structure under the
// output root, and report failures. One file's failure never aborts the run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prof-ramos/docling-diretorio/internal/docling"
	"github.com/prof-ramos/docling-diretorio/internal/scan"
	"github.com/prof-ramos/docling-diretorio/internal/ui"
	"github.com/prof-ramos/docling-diretorio/pkg/types"
)

// Converter is the seam to the external tool; docling.Runner is the
// production implementation.
type Converter interface {
	Convert(ctx context.Context, input, destDir, format string) (types.Outcome, error)
}

// Deps carries the injected capabilities for one run.
type Deps struct {
	Converter Converter
	Progress  ui.Progress
	Palette   ui.Palette

	// Out receives run-level notices when no progress display is active.
	Out io.Writer
}

// Summary is the outcome of a batch run.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int

	// Failures lists failed input paths in the order failures occurred.
	Failures []string

	// ReportPath is the failure report location, when one was written.
	ReportPath string
}

// Total returns the number of enumerated files.
func (s Summary) Total() int {
	return s.Converted + s.Skipped + s.Failed
}

// record tallies one file's disposition.
func (s *Summary) record(file string, status types.ConversionStatus) {
	switch status {
	case types.ConversionDone:
		s.Converted++
	case types.ConversionSkipped:
		s.Skipped++
	case types.ConversionFailed:
		s.Failed++
		s.Failures = append(s.Failures, file)
	}
}

// HasFailures reports whether any file failed conversion.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Run executes the driver for cfg. The source must already be resolved; a
// missing source is a fatal error, as are output-root and report I/O
// problems. Per-file converter failures are accumulated in the Summary
// instead. Cancellation of ctx stops the run between files and surfaces as
// ctx.Err().
func Run(ctx context.Context, cfg types.ConvertConfig, d Deps) (Summary, error) {
	var sum Summary

	prog := d.Progress
	if prog == nil {
		prog = ui.NoopProgress{W: d.Out}
	}
	pal := d.Palette
	if pal == nil {
		pal = ui.PlainPalette{}
	}

	info, err := os.Stat(cfg.Source)
	if err != nil {
		return sum, fmt.Errorf("source path %s does not exist", cfg.Source)
	}
	sourceIsDir := info.IsDir()

	files, err := scan.Files(cfg.Source, sourceIsDir)
	if err != nil {
		return sum, err
	}
	if len(files) == 0 {
		prog.Log(pal.Yellow("No supported files found to process."))
		return sum, nil
	}

	if err := os.MkdirAll(cfg.OutputRoot, 0o755); err != nil {
		return sum, fmt.Errorf("creating output root %s: %w", cfg.OutputRoot, err)
	}

	prog.Start(len(files), "Converting")
	defer prog.Finish()

	missingHinted := false
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		dest := scan.DestDir(cfg.OutputRoot, cfg.Source, file, sourceIsDir)

		if cfg.SkipExisting && hasArtifact(dest, scan.Stem(file)) {
			sum.record(file, types.ConversionSkipped)
			prog.Log(fmt.Sprintf("%s: %s (already converted)", types.ConversionSkipped, file))
			prog.Advance()
			continue
		}

		outcome, err := d.Converter.Convert(ctx, file, dest, cfg.OutputFormat)

		if cfg.Verbose {
			if out := strings.TrimRight(outcome.Stdout, "\n"); out != "" {
				prog.Log(out)
			}
			if errOut := strings.TrimRight(outcome.Stderr, "\n"); errOut != "" {
				prog.Log(errOut)
			}
		}

		switch {
		case errors.Is(err, docling.ErrConverterMissing):
			sum.record(file, types.ConversionFailed)
			if !missingHinted {
				prog.Log(pal.Red("docling CLI not found on PATH. Install docling and try again."))
				missingHinted = true
			}
		case err != nil:
			sum.record(file, types.ConversionFailed)
			prog.Log(pal.Red(fmt.Sprintf("%s:  %s (%v)", types.ConversionFailed, file, err)))
		case !outcome.OK():
			sum.record(file, types.ConversionFailed)
			prog.Log(pal.Red(fmt.Sprintf("docling failed for %s: exit code %d", file, outcome.ExitCode)))
			if !cfg.Verbose {
				if errOut := strings.TrimRight(outcome.Stderr, "\n"); errOut != "" {
					prog.Log(errOut)
				}
			}
		default:
			sum.record(file, types.ConversionDone)
		}
		prog.Advance()
	}

	prog.Log(fmt.Sprintf("\nBatch summary: %d converted, %d skipped, %d failed (total: %d)",
		sum.Converted, sum.Skipped, sum.Failed, sum.Total()))

	if sum.HasFailures() && cfg.ReportFile {
		path, err := WriteReport(sum.Failures, cfg.OutputRoot)
		if err != nil {
			return sum, err
		}
		sum.ReportPath = path
		prog.Log(pal.Yellow("Failure report written to " + path))
	}

	return sum, nil
}

// hasArtifact reports whether dest already contains an entry sharing stem,
// which the skip-existing policy treats as an existing docling artifact.
func hasArtifact(dest, stem string) bool {
	entries, err := os.ReadDir(dest)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), stem) {
			return true
		}
	}
	return false
}
