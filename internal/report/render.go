package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/nearestcolour/internal/colour"
)

// Format selects how a report is written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatCSV}
}

// ParseFormat resolves a format name case-insensitively. The empty string
// selects FormatTable.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatTable, nil
	}
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (valid: table, json, csv)", s)
}

// RenderOptions tune the written report.
type RenderOptions struct {
	Format  Format
	Top     int  // only the first Top entries; 0 for all
	Preview bool // ANSI swatches in table output
}

// Write renders r to w.
func Write(w io.Writer, r *Report, opts RenderOptions) error {
	switch opts.Format {
	case FormatTable, "":
		return writeTable(w, r, opts)
	case FormatJSON:
		return writeJSON(w, r, opts)
	case FormatCSV:
		return writeCSV(w, r, opts)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func writeTable(w io.Writer, r *Report, opts RenderOptions) error {
	headers := []string{"Name", "Hex", "Count", "Share"}
	if opts.Preview {
		headers = append([]string{""}, headers...)
	}
	table := NewTable(headers)
	off := len(headers) - 4
	table.SetAlign(off+2, AlignRight)
	table.SetAlign(off+3, AlignRight)

	for _, e := range r.Top(opts.Top) {
		row := []string{e.Name, e.Colour.Hex(), humanize.Comma(e.Count), formatShare(e.Share)}
		if opts.Preview {
			row = append([]string{colour.ColourPreview(e.Colour, 4)}, row...)
		}
		table.AddRow(row)
	}

	if _, err := io.WriteString(w, table.Render()); err != nil {
		return err
	}

	shown := len(r.Top(opts.Top))
	summary := fmt.Sprintf("\n%s of %s colours classified by %s into %d names",
		humanize.Comma(r.Total), humanize.Comma(r.Expected), r.Strategy, len(r.Entries))
	if shown < len(r.Entries) {
		summary += fmt.Sprintf(" (showing %d)", shown)
	}
	if r.Elapsed > 0 {
		summary += fmt.Sprintf(" in %s", r.Elapsed.Round(time.Millisecond))
	}
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return err
	}
	if len(r.Unmatched) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "%d of %d catalog names matched no colour: %s\n",
		len(r.Unmatched), r.Catalog, strings.Join(r.Unmatched, ", "))
	return err
}

func writeJSON(w io.Writer, r *Report, opts RenderOptions) error {
	out := *r
	out.Entries = r.Top(opts.Top)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, r *Report, opts RenderOptions) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "hex", "r", "g", "b", "count", "share"}); err != nil {
		return err
	}
	for _, e := range r.Top(opts.Top) {
		rec := []string{
			e.Name,
			e.Colour.Hex(),
			strconv.Itoa(int(e.Colour.R)),
			strconv.Itoa(int(e.Colour.G)),
			strconv.Itoa(int(e.Colour.B)),
			strconv.FormatInt(e.Count, 10),
			strconv.FormatFloat(e.Share, 'f', 6, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatShare(s float64) string {
	return strconv.FormatFloat(s*100, 'f', 2, 64) + "%"
}
