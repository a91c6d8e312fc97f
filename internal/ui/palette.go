// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

// Palette colors status text. The plain implementation returns the text
// unchanged, so callers never need to know whether a terminal is attached.
type Palette interface {
	Red(s string) string
	Green(s string) string
	Yellow(s string) string
	Cyan(s string) string
}

// PlainPalette passes text through unchanged.
type PlainPalette struct{}

func (PlainPalette) Red(s string) string    { return s }
func (PlainPalette) Green(s string) string  { return s }
func (PlainPalette) Yellow(s string) string { return s }
func (PlainPalette) Cyan(s string) string   { return s }

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// ANSIPalette wraps text in ANSI color escapes.
type ANSIPalette struct{}

func (ANSIPalette) Red(s string) string    { return ansiRed + s + ansiReset }
func (ANSIPalette) Green(s string) string  { return ansiGreen + s + ansiReset }
func (ANSIPalette) Yellow(s string) string { return ansiYellow + s + ansiReset }
func (ANSIPalette) Cyan(s string) string   { return ansiCyan + s + ansiReset }
