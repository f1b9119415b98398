// Package compression provides transparent decompression of catalog streams.
package compression

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/ulikunitz/xz"
)

// Format identifies a compression container.
type Format string

const (
	FormatNone  Format = "none"
	FormatGzip  Format = "gzip"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	bzip2Magic = []byte{'B', 'Z', 'h'}
)

// DetectFormat guesses the format from a file name or URL extension.
func DetectFormat(name string) Format {
	lower := strings.ToLower(name)
	// Strip any query string from URLs.
	if i := strings.IndexByte(lower, '?'); i >= 0 {
		lower = lower[:i]
	}
	switch {
	case strings.HasSuffix(lower, ".gz"), strings.HasSuffix(lower, ".gzip"):
		return FormatGzip
	case strings.HasSuffix(lower, ".xz"):
		return FormatXz
	case strings.HasSuffix(lower, ".bz2"):
		return FormatBzip2
	default:
		return FormatNone
	}
}

// sniffFormat inspects the leading bytes of a stream.
func sniffFormat(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, xzMagic):
		return FormatXz
	case bytes.HasPrefix(head, gzipMagic):
		return FormatGzip
	case bytes.HasPrefix(head, bzip2Magic):
		return FormatBzip2
	default:
		return FormatNone
	}
}

// NewReader returns a reader yielding the decompressed content of r. The
// format is taken from the name's extension and, failing that, from the
// stream's magic bytes. Uncompressed input is passed through.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	br := bufio.NewReader(r)

	format := DetectFormat(name)
	if format == FormatNone {
		head, _ := br.Peek(len(xzMagic))
		format = sniffFormat(head)
	}

	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, nil
	case FormatXz:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzr, nil
	case FormatBzip2:
		return bzip2.NewReader(br), nil
	default:
		return br, nil
	}
}
