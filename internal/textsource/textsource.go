// SPDX-License-Identifier: Apache-2.0

// Package textsource turns uploaded documents into the plain text consumed by
// the field extractor. Binary formats such as PDF or DOCX are decoded
// upstream; only text-based formats are handled here.
package textsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when no registered source can read a document.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Document is the raw input to the intake pipeline.
type Document struct {
	// Content is the raw document content.
	Content []byte
	// Format is an optional hint such as "text", "markdown", "yaml" or "json".
	Format string
	ID     string
}

// Source converts one family of document formats into plain text.
type Source interface {
	CanHandle(doc Document) bool
	Text(ctx context.Context, doc Document) (string, error)
	Name() string
}

// Registry selects a Source for a document.
type Registry struct {
	sources []Source
}

// NewRegistry creates a Registry. Order matters: the first source whose
// CanHandle accepts a document is used, so specific sources go first.
func NewRegistry(sources ...Source) *Registry {
	return &Registry{sources: sources}
}

// Resolve returns the first registered source that can handle doc.
func (r *Registry) Resolve(doc Document) (Source, error) {
	for _, src := range r.sources {
		if src.CanHandle(doc) {
			return src, nil
		}
	}
	return nil, fmt.Errorf("%w: no source for document %q (format hint: %q)", ErrUnsupportedFormat, doc.ID, doc.Format)
}

// Names returns the names of all registered sources.
func (r *Registry) Names() []string {
	names := make([]string, len(r.sources))
	for i, src := range r.sources {
		names[i] = src.Name()
	}
	return names
}

// extFormats maps file extensions to format hints.
var extFormats = map[string]string{
	".txt":      "text",
	".text":     "text",
	".md":       "markdown",
	".markdown": "markdown",
	".yaml":     "yaml",
	".yml":      "yaml",
	".json":     "json",
}

// FormatForPath derives a format hint from a file name. Unknown extensions
// are returned without the dot so that Resolve can report them.
func FormatForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f
	}
	return strings.TrimPrefix(ext, ".")
}

// LoadFile reads a document from disk.
func LoadFile(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read document %q: %w", path, err)
	}
	return Document{
		Content: content,
		Format:  FormatForPath(path),
		ID:      filepath.Base(path),
	}, nil
}
