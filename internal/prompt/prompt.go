// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt resolves the source path: from a command-line candidate, or
// by asking the operator. A graphical prompter is used when one is
// available, with the line-based prompt as the universal fallback.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prof-ramos/docling-diretorio/internal/ui"
)

// ErrCancelled indicates the operator abandoned the prompt (EOF on the
// terminal, or a dismissed dialog). Callers terminate gracefully.
var ErrCancelled = errors.New("operation cancelled by operator")

// NotFoundError reports a supplied source path that does not exist. It is
// fatal: the driver never proceeds with a non-existent path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source path %s does not exist", e.Path)
}

// Prompter asks the operator for one raw path candidate. Validation and
// retry live in the Resolver so every prompter behaves the same.
type Prompter interface {
	// Available reports whether this prompter can run in the current
	// environment.
	Available() bool

	// Ask obtains one candidate from the operator. Cancellation is
	// reported as ErrCancelled.
	Ask() (string, error)
}

// Resolver turns an optional candidate into an absolute, existence-checked
// source path.
type Resolver struct {
	// Graphical is tried first when non-nil and available.
	Graphical Prompter

	// Text is the fallback prompter, always usable.
	Text Prompter

	// Out receives validation warnings during the prompt loop.
	Out io.Writer

	// Palette colors the warnings.
	Palette ui.Palette

	// RequireDir restricts accepted paths to directories.
	RequireDir bool
}

// Resolve returns an absolute existing path. A non-empty candidate is
// normalized and checked once; failure is fatal (NotFoundError). With no
// candidate the operator is prompted until an existing path is given or the
// prompt is cancelled.
func (r *Resolver) Resolve(candidate string) (string, error) {
	if candidate != "" {
		path, err := Normalize(candidate)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(path)
		if err != nil {
			return "", &NotFoundError{Path: path}
		}
		if r.RequireDir && !info.IsDir() {
			return "", fmt.Errorf("source path %s is not a directory", path)
		}
		return path, nil
	}

	p := r.Text
	if r.Graphical != nil && r.Graphical.Available() {
		p = r.Graphical
	}

	pal := r.Palette
	if pal == nil {
		pal = ui.PlainPalette{}
	}

	for {
		raw, err := p.Ask()
		if err != nil {
			return "", err
		}
		if raw == "" {
			fmt.Fprintln(r.Out, pal.Yellow("A path is required."))
			continue
		}

		path, err := Normalize(raw)
		if err != nil {
			fmt.Fprintln(r.Out, pal.Red(fmt.Sprintf("Invalid path %q: %v", raw, err)))
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintln(r.Out, pal.Red(fmt.Sprintf("The path %s does not exist. Try again.", path)))
			continue
		}
		if r.RequireDir && !info.IsDir() {
			fmt.Fprintln(r.Out, pal.Red(fmt.Sprintf("The path %s is not a directory. Try again.", path)))
			continue
		}
		return path, nil
	}
}

// Normalize expands a leading ~ and resolves the path to absolute form.
func Normalize(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}

// TextPrompter reads path candidates line by line.
type TextPrompter struct {
	Question string
	Out      io.Writer

	in *bufio.Reader
}

// NewTextPrompter wraps in for line-based prompting.
func NewTextPrompter(in io.Reader, out io.Writer, question string) *TextPrompter {
	return &TextPrompter{
		Question: question,
		Out:      out,
		in:       bufio.NewReader(in),
	}
}

func (t *TextPrompter) Available() bool { return true }

func (t *TextPrompter) Ask() (string, error) {
	fmt.Fprint(t.Out, t.Question+" ")
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("reading prompt input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
