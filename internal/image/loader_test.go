package image

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/nearestcolour/internal/colour"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(2, 0, color.RGBA{B: 255, A: 255})
	img.Set(0, 1, color.RGBA{A: 255})
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(2, 1, color.RGBA{R: 192, G: 58, B: 88, A: 255})
	return img
}

func TestFileLoaderLoad(t *testing.T) {
	path := writePNG(t, testImage())

	img, err := NewFileLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}

	w, h, err := Dimensions(path)
	if err != nil || w != 3 || h != 2 {
		t.Errorf("Dimensions() = %d, %d, %v", w, h, err)
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(notImage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"empty", "", "cannot be empty"},
		{"missing", filepath.Join(dir, "missing.png"), "not found"},
		{"directory", dir, "directory"},
		{"undecodable", notImage, "failed to decode image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileLoader().Load(context.Background(), tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load(%q) error = %v, want containing %q", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestFileLoaderMaxPixels(t *testing.T) {
	path := writePNG(t, testImage())
	tests := []struct {
		name      string
		maxPixels int64
		wantErr   bool
	}{
		{"unlimited", 0, false},
		{"exact", 6, false},
		{"too large", 5, true},
		{"default", DefaultMaxPixels, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&FileLoader{MaxPixels: tt.maxPixels}).Load(context.Background(), path)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "3x2 pixels exceeds") {
					t.Errorf("Load() error = %v, want pixel limit error", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Load() error = %v", err)
			}
		})
	}
}

func TestSmartLoaderRejectsInsecureURL(t *testing.T) {
	_, err := NewSmartLoader().Load(context.Background(), "http://example.com/a.png")
	if err == nil || !strings.Contains(err.Error(), "HTTPS") {
		t.Errorf("expected HTTPS error, got %v", err)
	}
}

func TestSmartLoaderLocal(t *testing.T) {
	path := writePNG(t, testImage())
	if _, err := NewSmartLoader().Load(context.Background(), path); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func TestIsImageFile(t *testing.T) {
	tests := map[string]bool{
		"a.png":    true,
		"b.JPG":    true,
		"c.jpeg":   true,
		"d.gif":    true,
		"e.webp":   true,
		"f.csv":    false,
		"noext":    false,
		"g.png.gz": false,
	}
	for path, want := range tests {
		if got := IsImageFile(path); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestPixelSource(t *testing.T) {
	src := NewPixelSource(testImage())
	if src.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", src.Len())
	}
	w, h := src.Size()
	if w != 3 || h != 2 {
		t.Errorf("Size() = %d, %d", w, h)
	}

	var got []colour.RGB
	for i := range src.Len() {
		got = append(got, src.At(i))
	}
	want := []colour.RGB{
		{R: 255}, {G: 255}, {B: 255},
		{}, {R: 255, G: 255, B: 255}, {R: 192, G: 58, B: 88},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestPixelSourceOffsetBounds(t *testing.T) {
	img := testImage().SubImage(image.Rect(1, 1, 3, 2))
	src := NewPixelSource(img)
	want := []colour.RGB{{R: 255, G: 255, B: 255}, {R: 192, G: 58, B: 88}}
	got := []colour.RGB{src.At(0), src.At(1)}
	if src.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", src.Len())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}
