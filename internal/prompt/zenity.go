// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/prof-ramos/docling-diretorio/internal/execx"
)

const zenityBin = "zenity"

// ZenityPrompter asks for a path through a zenity entry dialog. It is the
// graphical capability: available only when a display is present and the
// zenity binary is on PATH, never a hard dependency.
type ZenityPrompter struct {
	Question string

	inv execx.Invoker
	env func(string) string
}

// NewZenityPrompter creates a graphical prompter backed by the invoker.
func NewZenityPrompter(inv execx.Invoker, question string) *ZenityPrompter {
	return &ZenityPrompter{
		Question: question,
		inv:      inv,
		env:      os.Getenv,
	}
}

func (z *ZenityPrompter) Available() bool {
	if z.env("DISPLAY") == "" && z.env("WAYLAND_DISPLAY") == "" {
		return false
	}
	_, err := z.inv.LookPath(zenityBin)
	return err == nil
}

// Ask shows the entry dialog. Dismissing it brings up a confirmation
// question; only a confirmed exit (or a vanished zenity binary) counts as
// cancellation, otherwise the entry dialog is shown again.
func (z *ZenityPrompter) Ask() (string, error) {
	for {
		res, err := z.inv.Run(context.Background(), zenityBin,
			"--entry", "--title=Docling", "--text="+z.Question)
		if err != nil {
			if errors.Is(err, execx.ErrNotFound) {
				return "", ErrCancelled
			}
			return "", err
		}
		if res.ExitCode != 0 {
			if z.confirmExit() {
				return "", ErrCancelled
			}
			continue
		}
		return strings.TrimSpace(res.Stdout), nil
	}
}

// confirmExit asks whether the operator really wants to abandon the prompt.
// Any failure to show the question is treated as a confirmed exit.
func (z *ZenityPrompter) confirmExit() bool {
	res, err := z.inv.Run(context.Background(), zenityBin,
		"--question", "--title=Docling", "--text=No path was given. Exit?")
	if err != nil {
		return true
	}
	return res.ExitCode == 0
}
