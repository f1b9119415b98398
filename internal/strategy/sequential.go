package strategy

import (
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/nearestcolour/internal/catalog"
	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/distribution"
)

type sequential struct {
	logger hclog.Logger
}

func (s *sequential) Name() Name {
	return SingleThreaded
}

func (s *sequential) Classify(src colour.Source, cat *catalog.Catalog) (distribution.Distribution, error) {
	resolver, names, err := prepare(cat)
	if err != nil {
		return distribution.Distribution{}, err
	}

	start := time.Now()
	s.logger.Debug("classifying", "colours", src.Len(), "catalog", len(names))

	dist := distribution.WithCapacity(len(names))
	record := func(c colour.RGB) {
		idx, _ := resolver.NearestIndex(c)
		dist.Record(names[idx])
	}

	if stepped, ok := src.(colour.Stepped); ok {
		for c := range stepped.All() {
			record(c)
		}
	} else {
		for i := range src.Len() {
			record(src.At(i))
		}
	}

	s.logger.Debug("classification complete", "names", dist.Len(), "elapsed", time.Since(start))
	return dist, nil
}
