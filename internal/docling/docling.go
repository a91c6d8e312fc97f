// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docling invokes the externally installed docling CLI. The command
// shape is `docling [--to <format>] --output <dir> <input>`; this package
// owns argument construction, output capture, and the distinction between
// "docling failed" and "docling is not installed".
package docling

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/prof-ramos/docling-diretorio/internal/execx"
	"github.com/prof-ramos/docling-diretorio/pkg/types"
)

// Binary is the converter executable expected on PATH.
const Binary = "docling"

// ErrConverterMissing indicates the docling CLI is not installed. The batch
// driver records it per file without aborting the run.
var ErrConverterMissing = errors.New("docling CLI not found on PATH")

// Runner invokes docling through an injected execx.Invoker.
type Runner struct {
	inv execx.Invoker
	bin string
}

// NewRunner creates a Runner using the given invoker.
func NewRunner(inv execx.Invoker) *Runner {
	return &Runner{inv: inv, bin: Binary}
}

// Args builds the docling argument vector for one input file.
func Args(input, destDir, format string) []string {
	args := make([]string, 0, 5)
	if format != "" {
		args = append(args, "--to", format)
	}
	args = append(args, "--output", destDir, input)
	return args
}

// Convert runs docling for one input file, creating destDir first. The
// returned Outcome carries exit code and captured output. A missing docling
// binary is reported as ErrConverterMissing; any other error means the
// invocation itself could not happen.
func (r *Runner) Convert(ctx context.Context, input, destDir, format string) (types.Outcome, error) {
	out := types.Outcome{Input: input}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return out, fmt.Errorf("creating destination %s: %w", destDir, err)
	}

	res, err := r.inv.Run(ctx, r.bin, Args(input, destDir, format)...)
	out.ExitCode = res.ExitCode
	out.Stdout = res.Stdout
	out.Stderr = res.Stderr

	if err != nil {
		if errors.Is(err, execx.ErrNotFound) {
			return out, ErrConverterMissing
		}
		return out, err
	}
	return out, nil
}

// Available reports whether the docling CLI is installed and responding.
// The probe runs `docling --help` under the given timeout; the web
// front-end uses it for its installation check.
func (r *Runner) Available(ctx context.Context, timeout time.Duration) bool {
	if _, err := r.inv.LookPath(r.bin); err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := r.inv.Run(ctx, r.bin, "--help")
	return err == nil && res.ExitCode == 0
}
