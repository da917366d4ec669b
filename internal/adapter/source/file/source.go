// Package file reads dictionary text from the local filesystem.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/hanzi-reader/internal/adapter/source"
)

// Source opens a dictionary file. Paths ending in ".gz" are decompressed.
type Source struct {
	path string
}

// New creates a Source for path.
func New(path string) *Source {
	return &Source{path: path}
}

// Open opens the file for reading.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("file: open: %w", err)
	}

	if strings.HasSuffix(s.path, ".gz") {
		return source.Gunzip(f)
	}
	return f, nil
}

// String returns the file path.
func (s *Source) String() string { return s.path }
