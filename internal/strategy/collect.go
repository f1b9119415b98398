package strategy

import (
	"slices"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/nearestcolour/internal/catalog"
	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/distribution"
)

// mapCollect resolves spans in parallel into sequences of matched catalog
// indices, concatenates them and folds the result on one goroutine.
type mapCollect struct {
	opts   Options
	logger hclog.Logger
}

func (m *mapCollect) Name() Name {
	return MultiThreadedGenerator
}

func (m *mapCollect) Classify(src colour.Source, cat *catalog.Catalog) (distribution.Distribution, error) {
	resolver, names, err := prepare(cat)
	if err != nil {
		return distribution.Distribution{}, err
	}

	start := time.Now()
	spans := partition(src.Len(), m.opts.ChunkSize)
	m.logger.Debug("classifying", "colours", src.Len(), "catalog", len(names),
		"workers", m.opts.Workers, "chunks", len(spans))

	outputs := make([][]int32, len(spans))
	err = forEachSpan(m.opts.Workers, spans, func(i int, s span) error {
		matches := make([]int32, 0, s.len())
		for idx := s.lo; idx < s.hi; idx++ {
			near, _ := resolver.NearestIndex(src.At(idx))
			matches = append(matches, int32(near))
		}
		outputs[i] = matches
		return nil
	})
	if err != nil {
		return distribution.Distribution{}, err
	}

	combined := slices.Concat(outputs...)
	m.logger.Trace("map phase complete", "matches", len(combined), "elapsed", time.Since(start))

	dist := distribution.WithCapacity(len(names))
	for _, near := range combined {
		dist.Record(names[near])
	}

	m.logger.Debug("classification complete", "names", dist.Len(), "elapsed", time.Since(start))
	return dist, nil
}
