package colour

import "errors"

// ErrEmptyCatalog is returned when a nearest match is requested against an
// empty set of reference colours.
var ErrEmptyCatalog = errors.New("catalog contains no reference colours")

// Resolver finds the nearest reference colour by exhaustive linear scan.
// It is immutable and safe for concurrent use.
type Resolver struct {
	refs []RGB
}

// NewResolver creates a Resolver over refs. The slice is copied so later
// changes by the caller cannot affect resolution.
func NewResolver(refs []RGB) (*Resolver, error) {
	if len(refs) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &Resolver{refs: append([]RGB(nil), refs...)}, nil
}

// Len returns the number of reference colours.
func (r *Resolver) Len() int {
	return len(r.refs)
}

// NearestIndex returns the index of the reference closest to c and the
// squared distance to it. Among equidistant references the first one wins.
func (r *Resolver) NearestIndex(c RGB) (int, int64) {
	best := 0
	bestDist := int64(MaxDistanceSquared + 1)
	for i, ref := range r.refs {
		d := DistanceSquared(c, ref)
		if d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return best, bestDist
}
