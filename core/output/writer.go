// Package output handles file naming and writing for import documents.
// Files are placed at the document path produced by the Transformer,
// below the output directory (e.g. /en/us/accessories/hoses → ./en/us/accessories/hoses.md).
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data at docPath + ext below the output directory, creating
// parent directories as needed. It returns the written file path.
func (w *Writer) Write(docPath string, data []byte, ext string) (string, error) {
	rel, err := relativePath(docPath)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(w.OutputDir, rel+ext)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// relativePath turns a document path into a relative
// file path, refusing paths that would escape the output directory.
func relativePath(docPath string) (string, error) {
	p := strings.Trim(docPath, "/")
	if p == "" {
		return "index", nil
	}
	clean := filepath.Clean(filepath.FromSlash(p))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("document path %q escapes the output directory", docPath)
	}
	return clean, nil
}
