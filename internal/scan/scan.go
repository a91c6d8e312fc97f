// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan enumerates convertible files and mirrors source directory
// structure under an output root.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// supported is the fixed allow-list of extensions docling accepts:
// documents, plain text, images, and audio.
var supported = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".ppt":  {},
	".pptx": {},
	".xls":  {},
	".xlsx": {},
	".csv":  {},
	".md":   {},
	".txt":  {},
	".html": {},
	".htm":  {},
	".xml":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".tiff": {},
	".bmp":  {},
	".gif":  {},
	".wav":  {},
	".mp3":  {},
	".aac":  {},
	".flac": {},
}

// Supported reports whether path has a convertible extension. The check is
// case-insensitive.
func Supported(path string) bool {
	_, ok := supported[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the supported extension set, sorted, with leading dots.
func Extensions() []string {
	exts := make([]string, 0, len(supported))
	for ext := range supported {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Files enumerates the input files for source. A file source yields exactly
// that file regardless of extension; a directory source is walked recursively
// and yields regular files with supported extensions, in traversal order.
func Files(source string, sourceIsDir bool) ([]string, error) {
	if !sourceIsDir {
		return []string{source}, nil
	}

	var files []string
	err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", source, err)
	}
	return files, nil
}

// DestDir computes the destination directory for one input file: the output
// root joined with the file's parent directory relative to the source root.
// When the source is a single file, or the relative path cannot be computed
// (or escapes the source), the output root itself is used.
func DestDir(outputRoot, source, file string, sourceIsDir bool) string {
	if !sourceIsDir {
		return outputRoot
	}

	rel, err := filepath.Rel(source, filepath.Dir(file))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return outputRoot
	}
	return filepath.Join(outputRoot, rel)
}

// Stem returns the file name without its extension, used to match existing
// docling artifacts for the skip-existing policy.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
