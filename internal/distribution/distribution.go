// Package distribution accumulates how many colours were assigned to each
// reference colour name.
package distribution

import "maps"

// Distribution maps a reference colour name to the number of colours
// assigned to it. The zero value is not usable; call New.
//
// A Distribution is not safe for concurrent mutation. Parallel strategies
// give each worker its own instance and combine them with Merge.
type Distribution struct {
	counts map[string]int64
}

// New returns an empty distribution.
func New() Distribution {
	return Distribution{counts: make(map[string]int64)}
}

// WithCapacity returns an empty distribution sized for n names.
func WithCapacity(n int) Distribution {
	return Distribution{counts: make(map[string]int64, n)}
}

// Single returns a distribution holding one observation of name.
func Single(name string) Distribution {
	return Distribution{counts: map[string]int64{name: 1}}
}

// FromCounts builds a distribution from a name to count map. The map is
// copied.
func FromCounts(counts map[string]int64) Distribution {
	d := WithCapacity(len(counts))
	for name, n := range counts {
		d.Add(name, n)
	}
	return d
}

// Record records one observation of name.
func (d Distribution) Record(name string) {
	d.counts[name]++
}

// Add records n observations of name. Unseen names are inserted with n.
func (d Distribution) Add(name string, n int64) {
	d.counts[name] += n
}

// MergeFrom adds every count of o into d.
func (d Distribution) MergeFrom(o Distribution) {
	for name, n := range o.counts {
		d.counts[name] += n
	}
}

// Merge returns a new distribution holding the summed counts of a and b.
// Neither input is modified. Merge is commutative and associative with New()
// as its identity.
func Merge(a, b Distribution) Distribution {
	out := WithCapacity(max(a.Len(), b.Len()))
	out.MergeFrom(a)
	out.MergeFrom(b)
	return out
}

// Get returns the count recorded for name.
func (d Distribution) Get(name string) int64 {
	return d.counts[name]
}

// Len returns the number of distinct names.
func (d Distribution) Len() int {
	return len(d.counts)
}

// Total returns the sum of all counts.
func (d Distribution) Total() int64 {
	var total int64
	for _, n := range d.counts {
		total += n
	}
	return total
}

// Counts returns a copy of the underlying name to count map.
func (d Distribution) Counts() map[string]int64 {
	return maps.Clone(d.counts)
}

// Clone returns an independent copy of d.
func (d Distribution) Clone() Distribution {
	return Distribution{counts: maps.Clone(d.counts)}
}

// Equal reports whether d and o hold the same names with the same counts.
func (d Distribution) Equal(o Distribution) bool {
	return maps.Equal(d.counts, o.counts)
}
