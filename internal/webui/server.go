// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webui serves the web front-end: a local-directory conversion form
// and a file-upload form. Conversions run through the batch driver invoked
// as a subprocess, so the web layer consumes only (source, output, format,
// verbose) and gets back (success, combined output).
package webui

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/prof-ramos/docling-diretorio/internal/execx"
	"github.com/prof-ramos/docling-diretorio/pkg/types"
)

// InstallChecker probes whether the docling CLI is installed.
type InstallChecker interface {
	Available(ctx context.Context, timeout time.Duration) bool
}

// Options configures the server.
type Options struct {
	Config  types.ServeConfig
	Version string

	// Exe is the path of the batch driver binary, normally this process's
	// own executable.
	Exe string

	Invoker execx.Invoker
	Checker InstallChecker
}

// Server is the web front-end HTTP server.
type Server struct {
	cfg     types.ServeConfig
	version string
	exe     string
	inv     execx.Invoker
	checker InstallChecker
	workDir string
	tmpl    *template.Template

	httpServer *http.Server
}

// New builds the server, creating a work directory for upload staging when
// none is configured.
func New(opts Options) (*Server, error) {
	workDir := opts.Config.WorkDir
	if workDir == "" {
		dir, err := os.MkdirTemp("", "docling-dirconv-")
		if err != nil {
			return nil, fmt.Errorf("creating work directory: %w", err)
		}
		workDir = dir
	}

	if opts.Config.InstallCheckTimeout <= 0 {
		opts.Config.InstallCheckTimeout = 10 * time.Second
	}

	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		cfg:     opts.Config,
		version: opts.Version,
		exe:     opts.Exe,
		inv:     opts.Invoker,
		checker: opts.Checker,
		workDir: workDir,
		tmpl:    tmpl,
	}
	s.httpServer = &http.Server{
		Addr:    opts.Config.Addr,
		Handler: s.Routes(),
	}
	return s, nil
}

// Routes builds the request multiplexer.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /convert", s.handleConvert)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /download", s.handleDownload)
	mux.HandleFunc("GET /api/info", s.handleInfo)
	mux.Handle("GET /static/", http.FileServer(http.FS(assetsFS)))

	return mux
}

// Start runs the server until Shutdown or a listener error.
func (s *Server) Start() error {
	fmt.Fprintf(os.Stderr, "Web interface listening on %s\n", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// runBatch invokes the batch driver subprocess and returns success plus the
// combined captured output. A non-zero exit is never reported as success.
func (s *Server) runBatch(ctx context.Context, source, output, format string, verbose bool) (bool, string) {
	args := []string{"convert", source, "--output", output}
	if format != "" {
		args = append(args, "--to", format)
	}
	if verbose {
		args = append(args, "--verbose")
	}

	res, err := s.inv.Run(ctx, s.exe, args...)
	combined := res.Stdout + res.Stderr
	if err != nil {
		return false, combined + fmt.Sprintf("\nerror running conversion: %v", err)
	}
	return res.ExitCode == 0, combined
}
