// Package cache keeps downloaded remote catalogs on disk so repeated runs
// do not refetch them.
package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FetchFunc retrieves the body of a URL.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// Options configures caching behaviour.
type Options struct {
	// Dir is where downloads are stored. If empty, DefaultDir is used.
	Dir string

	// Refresh refetches even when a cached copy exists.
	Refresh bool
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "nearestcolour"), nil
	}
	return filepath.Join(cacheDir, "nearestcolour"), nil
}

// Filename returns the deterministic cache filename for url. The extension
// is kept so that compressed downloads are still recognised by name.
func Filename(url string) string {
	hash := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", hash[:16])

	ext := filepath.Ext(url)
	if idx := strings.IndexByte(ext, '?'); idx != -1 {
		ext = ext[:idx]
	}
	if len(ext) > 5 || strings.ContainsAny(ext, "/#") {
		ext = ""
	}
	return name + ext
}

// Wrap returns a FetchFunc that serves url from the cache directory when
// present and otherwise calls fetch and stores the result. A failure to
// write the cache is returned so a misconfigured directory is noticed.
func Wrap(fetch FetchFunc, opts Options) FetchFunc {
	return func(ctx context.Context, url string) ([]byte, error) {
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		path := filepath.Join(dir, Filename(url))

		if !opts.Refresh {
			data, err := os.ReadFile(path) // #nosec G304 - path is derived from a hash inside the cache directory
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read cached file: %w", err)
			}
		}

		data, err := fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
			return nil, fmt.Errorf("failed to write cached file: %w", err)
		}
		return data, nil
	}
}
