// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prof-ramos/docling-diretorio/internal/docling"
	"github.com/prof-ramos/docling-diretorio/pkg/types"
)

type call struct {
	input  string
	dest   string
	format string
}

// fakeConverter implements Converter for testing. Inputs whose base name is
// listed in fail get a non-zero exit; missing simulates an absent docling.
type fakeConverter struct {
	fail    map[string]bool
	missing bool
	stdout  string
	calls   []call
}

func (f *fakeConverter) Convert(_ context.Context, input, dest, format string) (types.Outcome, error) {
	f.calls = append(f.calls, call{input: input, dest: dest, format: format})
	out := types.Outcome{Input: input, Stdout: f.stdout}
	if f.missing {
		return out, docling.ErrConverterMissing
	}
	if f.fail[filepath.Base(input)] {
		out.ExitCode = 1
		out.Stderr = "conversion error\n"
	}
	return out, nil
}

// writeFile creates a file with dummy content, creating parents as needed.
func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, cfg types.ConvertConfig, conv *fakeConverter) (Summary, error) {
	t.Helper()
	var out bytes.Buffer
	return Run(context.Background(), cfg, Deps{Converter: conv, Out: &out})
}

func TestRun_ZeroSupportedFiles(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "archive.zip"))
	outRoot := filepath.Join(t.TempDir(), "out")

	conv := &fakeConverter{}
	var log bytes.Buffer
	sum, err := Run(context.Background(), types.ConvertConfig{
		Source:     src,
		OutputRoot: outRoot,
		ReportFile: true,
	}, Deps{Converter: conv, Out: &log})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum.Total() != 0 {
		t.Errorf("total = %d, want 0", sum.Total())
	}
	if len(conv.calls) != 0 {
		t.Errorf("converter called %d times for empty batch", len(conv.calls))
	}
	if !strings.Contains(log.String(), "No supported files") {
		t.Errorf("missing notice, got %q", log.String())
	}
	if _, err := os.Stat(filepath.Join(outRoot, ReportName)); err == nil {
		t.Error("failure report written for empty batch")
	}
}

func TestRun_DestinationMirroring(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "x.pdf"))
	writeFile(t, filepath.Join(src, "sub", "y.docx"))
	outRoot := filepath.Join(t.TempDir(), "out")

	conv := &fakeConverter{}
	sum, err := run(t, types.ConvertConfig{
		Source:       src,
		OutputRoot:   outRoot,
		OutputFormat: "md",
	}, conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Converted != 2 {
		t.Fatalf("converted = %d, want 2", sum.Converted)
	}

	dests := make(map[string]string, len(conv.calls))
	for _, c := range conv.calls {
		dests[filepath.Base(c.input)] = c.dest
		if c.format != "md" {
			t.Errorf("format for %s = %q, want md", c.input, c.format)
		}
	}
	if dests["x.pdf"] != outRoot {
		t.Errorf("x.pdf dest = %q, want %q", dests["x.pdf"], outRoot)
	}
	if want := filepath.Join(outRoot, "sub"); dests["y.docx"] != want {
		t.Errorf("y.docx dest = %q, want %q", dests["y.docx"], want)
	}
}

func TestRun_FailuresAccumulateAndReport(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.pdf"))
	writeFile(t, filepath.Join(src, "b.txt"))
	writeFile(t, filepath.Join(src, "sub", "c.md"))
	outRoot := filepath.Join(t.TempDir(), "out")

	conv := &fakeConverter{fail: map[string]bool{"b.txt": true, "c.md": true}}
	sum, err := run(t, types.ConvertConfig{
		Source:     src,
		OutputRoot: outRoot,
		ReportFile: true,
	}, conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum.Converted != 1 || sum.Failed != 2 {
		t.Fatalf("summary = %+v, want 1 converted, 2 failed", sum)
	}

	// Failures are recorded in occurrence (traversal) order.
	want := []string{
		filepath.Join(src, "b.txt"),
		filepath.Join(src, "sub", "c.md"),
	}
	if len(sum.Failures) != len(want) {
		t.Fatalf("failures = %v, want %v", sum.Failures, want)
	}
	for i := range want {
		if sum.Failures[i] != want[i] {
			t.Errorf("failures[%d] = %q, want %q", i, sum.Failures[i], want[i])
		}
	}

	data, err := os.ReadFile(sum.ReportPath)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("report has %d lines, want 3: %q", len(lines), string(data))
	}
	if lines[1] != want[0] || lines[2] != want[1] {
		t.Errorf("report body = %v, want %v", lines[1:], want)
	}
}

func TestRun_ConverterMissing(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.pdf"))
	writeFile(t, filepath.Join(src, "b.txt"))
	outRoot := filepath.Join(t.TempDir(), "out")

	conv := &fakeConverter{missing: true}
	sum, err := run(t, types.ConvertConfig{
		Source:     src,
		OutputRoot: outRoot,
		ReportFile: true,
	}, conv)
	if err != nil {
		t.Fatalf("missing converter must not abort the run, got %v", err)
	}

	if sum.Failed != 2 {
		t.Errorf("failed = %d, want 2", sum.Failed)
	}
	if sum.ReportPath == "" {
		t.Error("no failure report written")
	}
}

func TestRun_SkipExisting(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "sub", "y.docx"))
	outRoot := filepath.Join(t.TempDir(), "out")
	// Destination already holds an artifact sharing y's stem.
	writeFile(t, filepath.Join(outRoot, "sub", "y.md"))

	conv := &fakeConverter{}
	sum, err := run(t, types.ConvertConfig{
		Source:       src,
		OutputRoot:   outRoot,
		SkipExisting: true,
		ReportFile:   true,
	}, conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum.Skipped != 1 || sum.Failed != 0 || sum.Converted != 0 {
		t.Errorf("summary = %+v, want 1 skipped only", sum)
	}
	if len(conv.calls) != 0 {
		t.Errorf("converter invoked for skipped file: %v", conv.calls)
	}
}

func TestRun_SourceMissing(t *testing.T) {
	conv := &fakeConverter{}
	_, err := run(t, types.ConvertConfig{
		Source:     filepath.Join(t.TempDir(), "nope"),
		OutputRoot: t.TempDir(),
	}, conv)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("error should mention missing path, got: %v", err)
	}
}

func TestRun_NoReportWhenDisabled(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.pdf"))
	outRoot := filepath.Join(t.TempDir(), "out")

	conv := &fakeConverter{fail: map[string]bool{"a.pdf": true}}
	sum, err := run(t, types.ConvertConfig{
		Source:     src,
		OutputRoot: outRoot,
		ReportFile: false,
	}, conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum.ReportPath != "" {
		t.Errorf("report path = %q, want empty", sum.ReportPath)
	}
	if _, err := os.Stat(filepath.Join(outRoot, ReportName)); err == nil {
		t.Error("report file written despite ReportFile=false")
	}
}

func TestRun_VerboseStreamEmission(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		fail      bool
		wantInLog []string
		skipInLog []string
	}{
		{
			name:      "verbose success emits stdout",
			verbose:   true,
			wantInLog: []string{"docling wrote artifact"},
		},
		{
			name:      "verbose failure emits stderr once",
			verbose:   true,
			fail:      true,
			wantInLog: []string{"conversion error", "exit code 1"},
		},
		{
			name:      "non-verbose failure still emits stderr",
			fail:      true,
			wantInLog: []string{"conversion error", "exit code 1"},
		},
		{
			name:      "non-verbose success stays quiet",
			skipInLog: []string{"docling wrote artifact"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := t.TempDir()
			writeFile(t, filepath.Join(src, "a.pdf"))

			conv := &fakeConverter{stdout: "docling wrote artifact\n"}
			if tt.fail {
				conv.fail = map[string]bool{"a.pdf": true}
			}

			var log bytes.Buffer
			_, err := Run(context.Background(), types.ConvertConfig{
				Source:     src,
				OutputRoot: filepath.Join(t.TempDir(), "out"),
				Verbose:    tt.verbose,
			}, Deps{Converter: conv, Out: &log})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, want := range tt.wantInLog {
				if got := strings.Count(log.String(), want); got != 1 {
					t.Errorf("log contains %q %d times, want 1:\n%s", want, got, log.String())
				}
			}
			for _, skip := range tt.skipInLog {
				if strings.Contains(log.String(), skip) {
					t.Errorf("log should not contain %q:\n%s", skip, log.String())
				}
			}
		})
	}
}

func TestRun_NilOutputDoesNotPanic(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "archive.zip"))

	sum, err := Run(context.Background(), types.ConvertConfig{
		Source:     src,
		OutputRoot: filepath.Join(t.TempDir(), "out"),
	}, Deps{Converter: &fakeConverter{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Total() != 0 {
		t.Errorf("total = %d, want 0", sum.Total())
	}
}

func TestSummaryRecord(t *testing.T) {
	tests := []struct {
		name   string
		status types.ConversionStatus
		want   Summary
	}{
		{
			name:   "done",
			status: types.ConversionDone,
			want:   Summary{Converted: 1},
		},
		{
			name:   "skipped",
			status: types.ConversionSkipped,
			want:   Summary{Skipped: 1},
		},
		{
			name:   "failed",
			status: types.ConversionFailed,
			want:   Summary{Failed: 1, Failures: []string{"/in/a.pdf"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sum Summary
			sum.record("/in/a.pdf", tt.status)

			if sum.Converted != tt.want.Converted || sum.Skipped != tt.want.Skipped || sum.Failed != tt.want.Failed {
				t.Errorf("summary = %+v, want %+v", sum, tt.want)
			}
			if len(sum.Failures) != len(tt.want.Failures) {
				t.Errorf("failures = %v, want %v", sum.Failures, tt.want.Failures)
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.pdf"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log bytes.Buffer
	_, err := Run(ctx, types.ConvertConfig{
		Source:     src,
		OutputRoot: filepath.Join(t.TempDir(), "out"),
	}, Deps{Converter: &fakeConverter{}, Out: &log})
	if err != context.Canceled {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestWriteReport_Content(t *testing.T) {
	outRoot := filepath.Join(t.TempDir(), "out")
	failures := []string{"/a/b/b.txt", "/a/b/sub/c.md"}

	path, err := WriteReport(failures, outRoot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != ReportName {
		t.Errorf("report name = %q, want %q", filepath.Base(path), ReportName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := reportHeader + "\n/a/b/b.txt\n/a/b/sub/c.md\n"
	if string(data) != want {
		t.Errorf("report = %q, want %q", string(data), want)
	}
}
