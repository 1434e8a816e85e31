// Package corpus reads source documents from a directory tree, filtering
// by file extension. Reads are fail-soft at file granularity: a file that
// cannot be read or is not valid UTF-8 is skipped with a warning and the
// run continues.
package corpus

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/corpuslabs/ragstore/domain/corpus"
)

// DefaultExtensions is the default set of accepted file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".txt", ".py"}
}

// Reader enumerates and reads corpus files under a root directory.
type Reader struct {
	root       string
	extensions map[string]struct{}
	logger     *slog.Logger
}

// NewReader creates a Reader for the given root directory. Extensions are
// matched case-insensitively against the file suffix; an empty list falls
// back to DefaultExtensions.
func NewReader(root string, extensions []string, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions()
	}

	accepted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		accepted[strings.ToLower(ext)] = struct{}{}
	}

	return &Reader{
		root:       root,
		extensions: accepted,
		logger:     logger,
	}
}

// ReadAll walks the root and returns the successfully read documents in
// walk order, with paths relative to the root. An empty corpus is a valid,
// non-error result. It returns an error only if the root itself cannot be
// walked.
func (r *Reader) ReadAll() ([]corpus.Document, error) {
	root, err := filepath.Abs(r.root)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("corpus root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus root %s is not a directory", root)
	}

	var documents []corpus.Document
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				r.logger.Warn("skipping unreadable directory", "path", path, "error", err)
				return fs.SkipDir
			}
			r.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !r.accepts(d.Name()) {
			return nil
		}

		text, ok := r.readFile(path)
		if !ok {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		documents = append(documents, corpus.NewDocument(filepath.ToSlash(rel), text))
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk corpus: %w", walkErr)
	}

	r.logger.Info("corpus read", "root", root, "documents", len(documents))
	return documents, nil
}

// accepts reports whether the file name carries an accepted extension.
func (r *Reader) accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	_, ok := r.extensions[ext]
	return ok
}

// readFile reads one file as UTF-8 text. Unreadable or undecodable files
// are skipped with a warning.
func (r *Reader) readFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("skipping unreadable file", "path", path, "error", err)
		return "", false
	}
	if !utf8.Valid(data) {
		r.logger.Warn("skipping file with invalid UTF-8", "path", path)
		return "", false
	}
	return string(data), true
}
