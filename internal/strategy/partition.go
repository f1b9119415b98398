package strategy

import (
	"golang.org/x/sync/errgroup"
)

// span is a half-open range of source indices.
type span struct {
	lo, hi int
}

func (s span) len() int {
	return s.hi - s.lo
}

// partition splits [0, n) into consecutive spans of at most size indices.
func partition(n, size int) []span {
	if n <= 0 {
		return nil
	}
	spans := make([]span, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		spans = append(spans, span{lo: lo, hi: min(lo+size, n)})
	}
	return spans
}

// forEachSpan runs fn for every span on a pool of at most workers
// goroutines. fn receives the span's position so it can write its result to
// a dedicated slot without locking.
func forEachSpan(workers int, spans []span, fn func(i int, s span) error) error {
	var g errgroup.Group
	g.SetLimit(workers)
	for i, s := range spans {
		g.Go(func() error {
			return fn(i, s)
		})
	}
	return g.Wait()
}
