// Package file opens input streams for the engine: local paths, http(s)
// URLs and standard input, with transparent decompression of gzip and lz4
// content chosen by file extension.
package file

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pierrec/lz4"
)

type stream struct {
	io.Reader
	closers []io.Closer
}

func (s *stream) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open returns a reader for the given location: "-" (or the empty string)
// for standard input, an http(s) URL, or a local path. Locations ending in
// .gz or .lz4 are decompressed transparently.
func Open(location string) (io.ReadCloser, error) {
	var raw io.Reader
	var closers []io.Closer
	name := location
	switch {
	case location == "" || location == "-":
		raw = os.Stdin
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		u, err := url.Parse(location)
		if err != nil {
			return nil, err
		}
		name = u.Path
		resp, err := http.Get(location)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetching %s: %s", location, resp.Status)
		}
		raw = resp.Body
		closers = append(closers, resp.Body)
	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, err
		}
		raw = f
		closers = append(closers, f)
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		zr, err := gzip.NewReader(raw)
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, err
		}
		closers = append(closers, zr)
		raw = zr
	case strings.HasSuffix(name, ".lz4"):
		raw = lz4.NewReader(raw)
	}
	return &stream{Reader: raw, closers: closers}, nil
}

// Create returns a writer for the given destination: "-" (or the empty
// string) for standard output, otherwise a local path which is truncated.
func Create(destination string) (io.WriteCloser, error) {
	if destination == "" || destination == "-" {
		// the caller must not close standard output
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(destination)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
