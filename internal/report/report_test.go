package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/nearestcolour/internal/catalog"
	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/distribution"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{Name: "Red", Colour: colour.RGB{R: 255}},
		{Name: "Green", Colour: colour.RGB{G: 255}},
		{Name: "Blue", Colour: colour.RGB{B: 255}},
		{Name: "Black", Colour: colour.RGB{}},
	})
}

func testReport() *Report {
	dist := distribution.FromCounts(map[string]int64{"Red": 5, "Green": 2, "Blue": 1})
	return New("SingleThreaded", "space", dist, testCatalog(), 8)
}

func TestNewOrdering(t *testing.T) {
	dist := distribution.FromCounts(map[string]int64{"b": 3, "a": 3, "c": 10, "d": 1})
	r := New("x", "", dist, nil, 17)

	var got []string
	for _, e := range r.Entries {
		got = append(got, e.Name)
	}
	if diff := cmp.Diff([]string{"c", "a", "b", "d"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if r.Total != 17 || r.Catalog != 0 {
		t.Errorf("Total = %d, Catalog = %d", r.Total, r.Catalog)
	}
}

func TestNewEntries(t *testing.T) {
	r := testReport()
	want := []Entry{
		{Name: "Red", Count: 5, Share: 0.625, Colour: colour.RGB{R: 255}},
		{Name: "Green", Count: 2, Share: 0.25, Colour: colour.RGB{G: 255}},
		{Name: "Blue", Count: 1, Share: 0.125, Colour: colour.RGB{B: 255}},
	}
	if diff := cmp.Diff(want, r.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if r.Catalog != 4 {
		t.Errorf("Catalog = %d, want 4", r.Catalog)
	}
}

func TestVerify(t *testing.T) {
	if err := testReport().Verify(); err != nil {
		t.Errorf("Verify() = %v", err)
	}

	r := New("PerColor", "space", distribution.New(), testCatalog(), 16_777_216)
	err := r.Verify()
	var inv *InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvariantError, got %v", err)
	}
	if inv.Expected != 16_777_216 || inv.Total != 0 || inv.Strategy != "PerColor" {
		t.Errorf("unexpected error fields %+v", inv)
	}
	if !strings.Contains(err.Error(), "expected 16777216") {
		t.Errorf("error message %q", err)
	}
}

func TestTopAndUnmatched(t *testing.T) {
	r := testReport()
	if n := len(r.Top(2)); n != 2 {
		t.Errorf("Top(2) returned %d entries", n)
	}
	if n := len(r.Top(0)); n != 3 {
		t.Errorf("Top(0) returned %d entries", n)
	}
	if n := len(r.Top(99)); n != 3 {
		t.Errorf("Top(99) returned %d entries", n)
	}
	if diff := cmp.Diff([]string{"Black"}, r.Unmatched); diff != "" {
		t.Errorf("Unmatched mismatch (-want +got):\n%s", diff)
	}
}

func TestNewUnmatched(t *testing.T) {
	cat := catalog.New([]catalog.Entry{
		{Name: "Red", Colour: colour.RGB{R: 255}},
		{Name: "Grey", Colour: colour.RGB{R: 128, G: 128, B: 128}},
		{Name: "Red", Colour: colour.RGB{R: 250}},
		{Name: "Blue", Colour: colour.RGB{B: 255}},
		{Name: "Grey", Colour: colour.RGB{R: 127, G: 127, B: 127}},
	})
	tests := []struct {
		name string
		dist distribution.Distribution
		want []string
	}{
		{"all claimed", distribution.FromCounts(map[string]int64{"Red": 1, "Grey": 1, "Blue": 1}), nil},
		{"duplicates listed once", distribution.FromCounts(map[string]int64{"Blue": 4}), []string{"Red", "Grey"}},
		{"nothing claimed", distribution.New(), []string{"Red", "Grey", "Blue"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("x", "", tt.dist, cat, tt.dist.Total())
			if diff := cmp.Diff(tt.want, r.Unmatched); diff != "" {
				t.Errorf("Unmatched mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if r := New("x", "", distribution.New(), nil, 0); r.Unmatched != nil {
		t.Errorf("Unmatched without catalog = %v", r.Unmatched)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "TABLE": FormatTable, "json": FormatJSON, " csv": FormatCSV} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testReport(), RenderOptions{Format: FormatTable, Top: 2}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Red", "#ff0000", "62.50%", "Green", "8 of 8 colours", "SingleThreaded", "(showing 2)",
		"1 of 4 catalog names matched no colour: Black"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Blue") {
		t.Errorf("Top 2 should omit Blue:\n%s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Error("escapes written without Preview")
	}

	buf.Reset()
	if err := Write(&buf, testReport(), RenderOptions{Preview: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\033[48;2;255;0;0m") {
		t.Errorf("expected swatch escape in preview output")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testReport(), RenderOptions{Format: FormatJSON, Top: 1}); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Strategy  string   `json:"strategy"`
		Total     int64    `json:"total"`
		Expected  int64    `json:"expected"`
		Entries   []Entry  `json:"entries"`
		Unmatched []string `json:"unmatched"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Strategy != "SingleThreaded" || got.Total != 8 || got.Expected != 8 {
		t.Errorf("unexpected header fields %+v", got)
	}
	if len(got.Entries) != 1 || got.Entries[0].Name != "Red" || got.Entries[0].Colour != (colour.RGB{R: 255}) {
		t.Errorf("unexpected entries %+v", got.Entries)
	}
	if diff := cmp.Diff([]string{"Black"}, got.Unmatched); diff != "" {
		t.Errorf("unmatched mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testReport(), RenderOptions{Format: FormatCSV}); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"name", "hex", "r", "g", "b", "count", "share"},
		{"Red", "#ff0000", "255", "0", "0", "5", "0.625000"},
		{"Green", "#00ff00", "0", "255", "0", "2", "0.250000"},
		{"Blue", "#0000ff", "0", "0", "255", "1", "0.125000"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}
