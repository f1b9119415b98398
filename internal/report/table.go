package report

import (
	"strings"
	"unicode/utf8"
)

// Align controls how a cell is padded within its column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table is a plain text table with columns sized to their widest cell.
// Widths ignore ANSI escape sequences so swatches do not skew the layout.
type Table struct {
	headers []string
	rows    [][]string
	align   []Align
	padding int
}

// NewTable creates a table with the given headers, all left aligned.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		align:   make([]Align, len(headers)),
		padding: 2,
	}
}

// SetAlign sets the alignment of column col. Out of range columns are ignored.
func (t *Table) SetAlign(col int, a Align) {
	if col >= 0 && col < len(t.align) {
		t.align[col] = a
	}
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	if len(row) == len(t.headers) {
		t.rows = append(t.rows, row)
		return
	}
	fixed := make([]string, len(t.headers))
	copy(fixed, row)
	t.rows = append(t.rows, fixed)
}

// Render formats the table as a string with a dashed separator under the
// header. A table without headers renders as the empty string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder
	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = pad(c, widths[i], t.align[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteString("\n")
	}

	line(t.headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	line(sep)
	for _, row := range t.rows {
		line(row)
	}
	return b.String()
}

func pad(s string, width int, a Align) string {
	n := displayWidth(s)
	if n >= width {
		return s
	}
	fill := strings.Repeat(" ", width-n)
	if a == AlignRight {
		return fill + s
	}
	return s + fill
}

// displayWidth counts runes outside of CSI escape sequences.
func displayWidth(s string) int {
	n := 0
	for i := 0; i < len(s); {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			i++
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		n++
	}
	return n
}
