package strategy

import (
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/nearestcolour/internal/catalog"
	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/distribution"
)

// mapReduce turns every index into a single-entry distribution, folds those
// into a private accumulator per span and combines the span partials
// pairwise. No list of per-colour matches is ever materialised.
type mapReduce struct {
	opts   Options
	logger hclog.Logger
}

func (m *mapReduce) Name() Name {
	return MultiThreadedMerge
}

func (m *mapReduce) Classify(src colour.Source, cat *catalog.Catalog) (distribution.Distribution, error) {
	resolver, names, err := prepare(cat)
	if err != nil {
		return distribution.Distribution{}, err
	}

	start := time.Now()
	spans := partition(src.Len(), m.opts.ChunkSize)
	m.logger.Debug("classifying", "colours", src.Len(), "catalog", len(names),
		"workers", m.opts.Workers, "chunks", len(spans))

	partials := make([]distribution.Distribution, len(spans))
	err = forEachSpan(m.opts.Workers, spans, func(i int, s span) error {
		acc := distribution.New()
		for idx := s.lo; idx < s.hi; idx++ {
			near, _ := resolver.NearestIndex(src.At(idx))
			acc.MergeFrom(distribution.Single(names[near]))
		}
		partials[i] = acc
		return nil
	})
	if err != nil {
		return distribution.Distribution{}, err
	}
	m.logger.Trace("map phase complete", "partials", len(partials), "elapsed", time.Since(start))

	dist, err := reduceTree(m.opts.Workers, partials)
	if err != nil {
		return distribution.Distribution{}, err
	}

	m.logger.Debug("classification complete", "names", dist.Len(), "elapsed", time.Since(start))
	return dist, nil
}

// reduceTree merges partials pairwise, level by level, until one remains.
// An empty input reduces to the empty distribution.
func reduceTree(workers int, partials []distribution.Distribution) (distribution.Distribution, error) {
	if len(partials) == 0 {
		return distribution.New(), nil
	}

	level := partials
	for len(level) > 1 {
		pairs := make([]span, 0, (len(level)+1)/2)
		for lo := 0; lo < len(level); lo += 2 {
			pairs = append(pairs, span{lo: lo, hi: min(lo+2, len(level))})
		}

		next := make([]distribution.Distribution, len(pairs))
		err := forEachSpan(workers, pairs, func(i int, s span) error {
			if s.len() == 1 {
				next[i] = level[s.lo]
				return nil
			}
			next[i] = distribution.Merge(level[s.lo], level[s.lo+1])
			return nil
		})
		if err != nil {
			return distribution.Distribution{}, err
		}
		level = next
	}
	return level[0], nil
}
