package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/compression"
	"github.com/jmylchreest/nearestcolour/internal/security"
	httputil "github.com/jmylchreest/nearestcolour/internal/util/http"
)

// DefaultSource names the embedded catalog in logs and errors.
const DefaultSource = "builtin"

// DefaultMaxBytes caps the decompressed size of a catalog.
const DefaultMaxBytes = 16 << 20

//go:embed colours.csv
var builtinCSV []byte

// requiredColumns are resolved by header name, so their order in the file is
// free.
var requiredColumns = []string{"name", "r", "g", "b"}

// LoadError reports a catalog that is missing, unreadable or malformed.
type LoadError struct {
	Source string
	Line   int // 0 when the failure is not tied to a row
	Err    error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("catalog %s: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FetchFunc retrieves a remote catalog body.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// Loader loads catalogs from the embedded default, local files or HTTPS URLs.
type Loader struct {
	// MaxBytes limits the decompressed catalog size.
	MaxBytes int64

	// Fetch retrieves remote catalogs. The default validates the URL and uses
	// the shared HTTP fetcher.
	Fetch FetchFunc

	Logger hclog.Logger
}

// NewLoader creates a Loader with default limits and fetcher.
func NewLoader(logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Loader{
		MaxBytes: DefaultMaxBytes,
		Fetch:    fetchHTTPS,
		Logger:   logger,
	}
}

func fetchHTTPS(ctx context.Context, url string) ([]byte, error) {
	if err := security.ValidateHTTPURL(url); err != nil {
		return nil, err
	}
	return httputil.Fetch(ctx, url, httputil.FetchOptions{})
}

// Load loads the catalog named by source. An empty source or "builtin"
// selects the embedded catalog; http(s) URLs are fetched; anything else is
// read from the filesystem. Gzip, xz and bzip2 content is decompressed
// transparently.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	switch {
	case source == "" || source == DefaultSource:
		l.Logger.Debug("loading builtin catalog")
		return l.parse(bytes.NewReader(builtinCSV), DefaultSource)

	case security.IsRemote(source):
		l.Logger.Debug("fetching remote catalog", "url", source)
		data, err := l.Fetch(ctx, source)
		if err != nil {
			return nil, &LoadError{Source: source, Err: err}
		}
		return l.parse(bytes.NewReader(data), source)

	default:
		if err := security.ValidateFilePath(source); err != nil {
			return nil, &LoadError{Source: source, Err: err}
		}
		f, err := os.Open(source) // #nosec G304 - user-specified catalog path, intended to be read
		if err != nil {
			return nil, &LoadError{Source: source, Err: err}
		}
		defer f.Close()
		l.Logger.Debug("reading catalog file", "path", source)
		return l.parse(f, source)
	}
}

func (l *Loader) parse(r io.Reader, source string) (*Catalog, error) {
	dr, err := compression.NewReader(r, source)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	maxBytes := l.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	cat, err := Parse(security.NewLimitedReader(dr, maxBytes), source)
	if err != nil {
		return nil, err
	}
	l.Logger.Debug("catalog loaded", "source", source, "entries", cat.Len())
	return cat, nil
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(builtinCSV), DefaultSource)
}

// Parse reads a delimited catalog with a header row naming at least the
// columns name, r, g and b. Blank lines are skipped, as are comment lines:
// any line starting with '#' before the header, and single-field lines
// starting with '#' after it. Data rows may carry hex values such as
// "#ff0000" in any column. A catalog without rows is rejected.
func Parse(r io.Reader, source string) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var header []string
	for {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &LoadError{Source: source, Err: fmt.Errorf("missing header row: %w", colour.ErrEmptyCatalog)}
			}
			return nil, &LoadError{Source: source, Err: fmt.Errorf("failed to read header: %w", err)}
		}
		if !strings.HasPrefix(strings.TrimSpace(record[0]), "#") {
			header = record
			break
		}
	}

	cols, err := resolveColumns(header)
	if err != nil {
		line, _ := cr.FieldPos(0)
		return nil, &LoadError{Source: source, Line: line, Err: err}
	}

	var entries []Entry
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &LoadError{Source: source, Line: perr.Line, Err: perr.Err}
			}
			return nil, &LoadError{Source: source, Err: err}
		}
		if isComment(record) {
			continue
		}

		line, _ := cr.FieldPos(0)
		e, err := parseRecord(record, cols)
		if err != nil {
			return nil, &LoadError{Source: source, Line: line, Err: err}
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return nil, &LoadError{Source: source, Err: colour.ErrEmptyCatalog}
	}
	return New(entries), nil
}

// isComment reports whether a data record is a whole-line comment. Rows
// with several fields are data even when the first begins with '#'.
func isComment(record []string) bool {
	return len(record) == 1 && strings.HasPrefix(strings.TrimSpace(record[0]), "#")
}

// resolveColumns maps each required column to its position in the header.
func resolveColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(requiredColumns))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[key]; dup {
			if slices.Contains(requiredColumns, key) {
				return nil, fmt.Errorf("duplicate column %q in header", key)
			}
			continue
		}
		cols[key] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("header is missing required column %q (have %s)", name, strings.Join(header, ","))
		}
	}
	return cols, nil
}

func parseRecord(record []string, cols map[string]int) (Entry, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(record) {
			return "", fmt.Errorf("row has %d fields, missing column %q", len(record), name)
		}
		return record[i], nil
	}

	name, err := field("name")
	if err != nil {
		return Entry{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, fmt.Errorf("colour name cannot be empty")
	}

	var ch [3]uint8
	for i, col := range requiredColumns[1:] {
		raw, err := field(col)
		if err != nil {
			return Entry{}, err
		}
		v, err := colour.ParseChannel(raw)
		if err != nil {
			return Entry{}, fmt.Errorf("%s: column %s: %w", name, col, err)
		}
		ch[i] = v
	}

	return Entry{Name: name, Colour: colour.RGB{R: ch[0], G: ch[1], B: ch[2]}}, nil
}
