// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webui

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prof-ramos/docling-diretorio/internal/scan"
)

type indexData struct {
	Version string
	Formats []string
}

type resultData struct {
	Success   bool
	Output    string
	OutputDir string
}

type uploadData struct {
	Success bool
	Output  string
	Token   string
	Files   []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", indexData{
		Version: s.version,
		Formats: scan.Extensions(),
	})
}

// handleConvert converts a local directory through the batch driver
// subprocess and shows the combined output.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	source := r.FormValue("source")
	output := r.FormValue("output")
	format := r.FormValue("format")
	verbose := r.FormValue("verbose") != ""

	if source == "" {
		s.render(w, "result.html", resultData{Output: "A source directory is required."})
		return
	}
	if _, err := os.Stat(source); err != nil {
		s.render(w, "result.html", resultData{
			Output: fmt.Sprintf("Source directory not found: %s", source),
		})
		return
	}
	if output == "" {
		output = "docling-output"
	}

	ok, combined := s.runBatch(r.Context(), source, output, format, verbose)
	s.render(w, "result.html", resultData{
		Success:   ok,
		Output:    combined,
		OutputDir: output,
	})
}

// handleUpload stages uploaded files into a per-request directory, converts
// them, and lists the produced artifacts with download links.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		http.Error(w, "invalid upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.render(w, "upload.html", uploadData{Output: "No files selected."})
		return
	}

	token, err := newToken()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	srcDir := filepath.Join(s.workDir, token, "source")
	outDir := filepath.Join(s.workDir, token, "output")
	for _, dir := range []string{srcDir, outDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if name == "" || name == "." || name == string(filepath.Separator) {
			continue
		}
		if err := saveUpload(fh, filepath.Join(srcDir, name)); err != nil {
			http.Error(w, "staging upload: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	format := r.FormValue("format")
	ok, combined := s.runBatch(r.Context(), srcDir, outDir, format, true)

	var produced []string
	_ = filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		if rel, err := filepath.Rel(outDir, path); err == nil {
			produced = append(produced, rel)
		}
		return nil
	})

	s.render(w, "upload.html", uploadData{
		Success: ok,
		Output:  combined,
		Token:   token,
		Files:   produced,
	})
}

// handleDownload serves one produced artifact. Both the token and the file
// path are validated so requests cannot escape the token's output root.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if !validToken(token) {
		http.Error(w, "invalid token", http.StatusBadRequest)
		return
	}

	file := filepath.Clean(r.URL.Query().Get("file"))
	if file == "" || filepath.IsAbs(file) || !filepath.IsLocal(file) {
		http.Error(w, "invalid file path", http.StatusBadRequest)
		return
	}

	full := filepath.Join(s.workDir, token, "output", file)
	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(full)))
	http.ServeFile(w, r, full)
}

// handleInfo reports version, docling installation status, and the
// supported extension set. Doubles as the healthcheck endpoint.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	installed := s.checker.Available(r.Context(), s.cfg.InstallCheckTimeout)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"version":           s.version,
		"docling_installed": installed,
		"formats":           scan.Extensions(),
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "rendering page: "+err.Error(), http.StatusInternalServerError)
	}
}

func saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, src)
	return err
}

func newToken() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

func validToken(token string) bool {
	if len(token) != 32 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}
