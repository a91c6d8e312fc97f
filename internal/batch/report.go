// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReportName is the failure report file written under the output root.
const ReportName = "failed_conversions.txt"

const reportHeader = "Files that failed conversion:"

// WriteReport writes the failure report: a header line followed by one
// failed path per line, in failure order. It returns the report path.
func WriteReport(failures []string, outputRoot string) (string, error) {
	path := filepath.Join(outputRoot, ReportName)
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	var b strings.Builder
	b.WriteString(reportHeader + "\n")
	for _, f := range failures {
		b.WriteString(f + "\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing failure report: %w", err)
	}
	return path, nil
}
