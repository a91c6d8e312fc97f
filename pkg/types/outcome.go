// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates how the driver disposed of a single input file.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// Outcome captures one docling invocation for one input file.
type Outcome struct {
	// Input is the absolute path of the converted file.
	Input string `json:"input" yaml:"input"`

	// ExitCode is the converter's exit code. Zero means success.
	ExitCode int `json:"exit_code" yaml:"exit_code"`

	// Stdout and Stderr hold the captured output streams.
	Stdout string `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Stderr string `json:"stderr,omitempty" yaml:"stderr,omitempty"`
}

// OK reports whether the invocation succeeded.
func (o Outcome) OK() bool {
	return o.ExitCode == 0
}
