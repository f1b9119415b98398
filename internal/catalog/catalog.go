// Package catalog holds the ordered set of named reference colours that
// every colour is classified against.
package catalog

import (
	"github.com/jmylchreest/nearestcolour/internal/colour"
)

// Entry is a named reference colour.
type Entry struct {
	Name   string     `json:"name"`
	Colour colour.RGB `json:"rgb"`
}

// Catalog is an immutable, ordered list of reference colours. Entry order is
// significant: it decides which entry wins when several are equidistant.
type Catalog struct {
	entries []Entry
}

// New returns a catalog over a copy of entries. An empty catalog is valid to
// construct; it fails with colour.ErrEmptyCatalog as soon as it is used for
// resolution.
func New(entries []Entry) *Catalog {
	return &Catalog{entries: append([]Entry(nil), entries...)}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entry returns the entry at index i.
func (c *Catalog) Entry(i int) Entry {
	return c.entries[i]
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Lookup returns the first entry with the given name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	for _, e := range c.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Resolver builds a nearest-match resolver over the catalog colours.
func (c *Catalog) Resolver() (*colour.Resolver, error) {
	refs := make([]colour.RGB, len(c.entries))
	for i, e := range c.entries {
		refs[i] = e.Colour
	}
	return colour.NewResolver(refs)
}

// Nearest returns the entry closest to target and its Euclidean distance.
// For repeated queries build a Resolver once instead.
func (c *Catalog) Nearest(target colour.RGB) (Entry, float64, error) {
	r, err := c.Resolver()
	if err != nil {
		return Entry{}, 0, err
	}
	idx, _ := r.NearestIndex(target)
	e := c.entries[idx]
	return e, colour.Distance(target, e.Colour), nil
}
