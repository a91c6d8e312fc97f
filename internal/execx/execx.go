// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package execx wraps synchronous external command execution behind a small
// seam so everything that shells out (the docling invoker, the graphical
// prompter, the web front-end's subprocess driver) can be tested with a fake.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrNotFound indicates the requested binary is absent from PATH.
var ErrNotFound = errors.New("executable not found on PATH")

// Result captures one finished command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Invoker runs external commands and captures their outcome. A non-zero exit
// code is not an error; it is reported through Result so callers can decide.
// Run returns an error only when the command could not be started at all.
type Invoker interface {
	// LookPath resolves a binary name against PATH.
	LookPath(bin string) (string, error)

	// Run executes bin with args, blocking until exit, capturing both
	// output streams and the exit code. A missing binary yields an error
	// wrapping ErrNotFound.
	Run(ctx context.Context, bin string, args ...string) (Result, error)
}

// OSInvoker is the production Invoker backed by os/exec.
type OSInvoker struct{}

func (OSInvoker) LookPath(bin string) (string, error) {
	return exec.LookPath(bin)
}

func (OSInvoker) Run(ctx context.Context, bin string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return res, fmt.Errorf("%s: %w", bin, ErrNotFound)
	}

	return res, fmt.Errorf("running %s: %w", bin, err)
}
