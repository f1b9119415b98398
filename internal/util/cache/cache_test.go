package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilename(t *testing.T) {
	a := Filename("https://example.com/colours.csv.gz")
	if !strings.HasSuffix(a, ".gz") || len(a) != 32+3 {
		t.Errorf("Filename = %q", a)
	}
	if Filename("https://example.com/colours.csv.gz") != a {
		t.Error("Filename is not deterministic")
	}
	if b := Filename("https://example.com/other.csv.gz"); b == a {
		t.Error("distinct URLs share a filename")
	}
	if got := Filename("https://example.com/c.xz?token=1"); !strings.HasSuffix(got, ".xz") {
		t.Errorf("query not stripped: %q", got)
	}
	if got := Filename("https://example.com/colours"); len(got) != 32 {
		t.Errorf("expected bare hash, got %q", got)
	}
}

func TestWrap(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	fetch := func(_ context.Context, url string) ([]byte, error) {
		calls++
		return []byte("body of " + url), nil
	}
	url := "https://example.com/colours.csv"

	cached := Wrap(fetch, Options{Dir: dir})
	for range 3 {
		data, err := cached(context.Background(), url)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "body of "+url {
			t.Errorf("data = %q", data)
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
	if _, err := os.Stat(filepath.Join(dir, Filename(url))); err != nil {
		t.Errorf("cache file missing: %v", err)
	}

	refresh := Wrap(fetch, Options{Dir: dir, Refresh: true})
	if _, err := refresh(context.Background(), url); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("refresh should refetch, calls = %d", calls)
	}
}

func TestWrapFetchError(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	cached := Wrap(func(context.Context, string) ([]byte, error) { return nil, boom }, Options{Dir: dir})
	if _, err := cached(context.Background(), "https://example.com/x.csv"); !errors.Is(err, boom) {
		t.Errorf("expected fetch error, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed fetch left %d cache entries", len(entries))
	}
}
