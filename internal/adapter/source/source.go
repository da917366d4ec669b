// Package source holds helpers shared by the dictionary text sources.
package source

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gunzip wraps rc in a gzip decompressor. Closing the result closes rc.
func Gunzip(rc io.ReadCloser) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return &gzipReadCloser{Reader: zr, underlying: rc}, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	underlying io.Closer
}

func (g *gzipReadCloser) Close() error {
	zerr := g.Reader.Close()
	uerr := g.underlying.Close()
	if zerr != nil {
		return zerr
	}
	return uerr
}
