// Package report orders a classification result for presentation and checks
// that it accounts for every classified colour.
package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jmylchreest/nearestcolour/internal/catalog"
	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/distribution"
)

// Entry is one line of a report.
type Entry struct {
	Name   string     `json:"name"`
	Count  int64      `json:"count"`
	Share  float64    `json:"share"`
	Colour colour.RGB `json:"rgb"`
}

// Report is a distribution sorted by descending count.
type Report struct {
	Strategy string        `json:"strategy"`
	Source   string        `json:"source"`
	Catalog  int           `json:"catalog_size"`
	Expected int64         `json:"expected"`
	Total    int64         `json:"total"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	Entries  []Entry       `json:"entries"`

	// Unmatched lists catalog names nearest to no classified colour, in
	// catalog order.
	Unmatched []string `json:"unmatched,omitempty"`
}

// InvariantError reports a distribution whose counts do not add up to the
// number of classified colours. It always indicates a defect in
// enumeration, resolution or aggregation.
type InvariantError struct {
	Strategy string
	Expected int64
	Total    int64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("distribution from %s accounts for %d colours, expected %d", e.Strategy, e.Total, e.Expected)
}

// New builds a report from dist. Entries are ordered by count descending and
// then by name so output is reproducible. The catalog supplies the swatch
// colour for each name; with duplicate names the first entry is used. Names
// of cat that claimed nothing are recorded in Unmatched.
func New(strategy, source string, dist distribution.Distribution, cat *catalog.Catalog, expected int64) *Report {
	total := dist.Total()
	entries := make([]Entry, 0, dist.Len())
	for name, n := range dist.Counts() {
		e := Entry{Name: name, Count: n}
		if total > 0 {
			e.Share = float64(n) / float64(total)
		}
		if cat != nil {
			if ref, ok := cat.Lookup(name); ok {
				e.Colour = ref.Colour
			}
		}
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Count != b.Count {
			if a.Count > b.Count {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	r := &Report{
		Strategy: strategy,
		Source:   source,
		Expected: expected,
		Total:    total,
		Entries:  entries,
	}
	if cat != nil {
		r.Catalog = cat.Len()
		r.Unmatched = unmatched(entries, cat)
	}
	return r
}

// Verify checks that the counts sum to the expected number of colours.
func (r *Report) Verify() error {
	if r.Total != r.Expected {
		return &InvariantError{Strategy: r.Strategy, Expected: r.Expected, Total: r.Total}
	}
	return nil
}

// Top returns at most n leading entries. n <= 0 returns all entries.
func (r *Report) Top(n int) []Entry {
	if n <= 0 || n >= len(r.Entries) {
		return r.Entries
	}
	return r.Entries[:n]
}

func unmatched(entries []Entry, cat *catalog.Catalog) []string {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Name] = true
	}
	var out []string
	for _, e := range cat.Entries() {
		if !seen[e.Name] {
			seen[e.Name] = true
			out = append(out, e.Name)
		}
	}
	return out
}
