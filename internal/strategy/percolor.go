package strategy

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/nearestcolour/internal/catalog"
	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/distribution"
)

type perColor struct {
	logger hclog.Logger
}

func (p *perColor) Name() Name {
	return PerColor
}

// Classify validates the catalog and returns an empty distribution.
func (p *perColor) Classify(_ colour.Source, cat *catalog.Catalog) (distribution.Distribution, error) {
	if _, _, err := prepare(cat); err != nil {
		return distribution.Distribution{}, err
	}
	p.logger.Warn("strategy is not implemented, no colours were classified")
	return distribution.New(), nil
}
