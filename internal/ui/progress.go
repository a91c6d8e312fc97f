// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui holds the injected presentation capabilities: per-file progress
// reporting and colored text. Both have plain/no-op defaults so the core
// never depends on a specific terminal facility.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Progress reports per-item progress during a batch run. Log writes a line
// without corrupting any progress display.
type Progress interface {
	Start(total int, description string)
	Advance()
	Log(msg string)
	Finish()
}

// NoopProgress discards progress and writes log lines to w. It is the
// default for non-interactive contexts (web subprocess, tests).
type NoopProgress struct {
	W io.Writer
}

func (NoopProgress) Start(int, string) {}
func (NoopProgress) Advance()          {}
func (NoopProgress) Finish()           {}

func (p NoopProgress) Log(msg string) {
	if p.W != nil {
		fmt.Fprintln(p.W, msg)
	}
}

// BarProgress renders a terminal progress bar.
type BarProgress struct {
	W   io.Writer
	bar *progressbar.ProgressBar
}

func (p *BarProgress) Start(total int, description string) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.W),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.W)
		}),
	)
}

func (p *BarProgress) Advance() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *BarProgress) Log(msg string) {
	if p.bar != nil {
		_, _ = progressbar.Bprintln(p.bar, msg)
		return
	}
	fmt.Fprintln(p.W, msg)
}

func (p *BarProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
