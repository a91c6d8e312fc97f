package types

import "time"

// ConvertConfig holds settings for one batch conversion run.
type ConvertConfig struct {
	// Source is the resolved file or directory to convert. Directories are
	// traversed recursively.
	Source string `json:"source" yaml:"source"`

	// OutputRoot is the directory under which converted artifacts and the
	// failure report are written (default "docling-output"). The source
	// directory structure is mirrored beneath it.
	OutputRoot string `json:"output_root" yaml:"output_root"`

	// OutputFormat is an optional docling output format (e.g. "md", "json").
	// Empty means docling's own default.
	OutputFormat string `json:"output_format,omitempty" yaml:"output_format,omitempty"`

	// SkipExisting skips files whose destination directory already contains
	// an artifact sharing the input file's stem.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing"`

	// Verbose prints docling's stdout/stderr for every processed file.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// ReportFile controls whether failures are written to
	// failed_conversions.txt under OutputRoot. The interactive front-end
	// turns this off and lists failures on the console instead.
	ReportFile bool `json:"report_file" yaml:"report_file"`
}

// ServeConfig holds settings for the web front-end.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// WorkDir is the directory for upload staging and result retention.
	// Empty means a fresh directory under os.TempDir().
	WorkDir string `json:"work_dir,omitempty" yaml:"work_dir,omitempty"`

	// InstallCheckTimeout bounds the docling installation probe (default 10s).
	InstallCheckTimeout time.Duration `json:"install_check_timeout" yaml:"install_check_timeout"`
}
