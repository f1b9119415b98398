// Package strategy drives colour classification over a colour source using
// one of several interchangeable execution strategies. Every implemented
// strategy produces the same distribution for the same source and catalog.
package strategy

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/nearestcolour/internal/catalog"
	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/distribution"
)

// Name identifies an execution strategy.
type Name string

const (
	// SingleThreaded walks the source in stepping order on one goroutine.
	SingleThreaded Name = "SingleThreaded"

	// MultiThreadedGenerator maps chunks of indices to matches in parallel,
	// concatenates the matches and folds them into one distribution.
	MultiThreadedGenerator Name = "MultiThreadedGenerator"

	// MultiThreadedMerge maps every index to a single-entry distribution and
	// merges them in a parallel reduction tree.
	MultiThreadedMerge Name = "MultiThreadedMerge"

	// PerColor is reserved and not implemented; it yields an empty
	// distribution.
	PerColor Name = "PerColor"
)

// Default is the strategy used when none is selected.
const Default = MultiThreadedGenerator

// DefaultChunkSize is the number of indices handed to a worker at a time.
const DefaultChunkSize = 1 << 16

// ErrUnknownStrategy is returned for unrecognised strategy names.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy classifies every colour of a source against a catalog.
type Strategy interface {
	// Name returns the strategy identifier.
	Name() Name

	// Classify assigns each colour in src to its nearest catalog entry and
	// returns the per-name counts. It fails with colour.ErrEmptyCatalog
	// before doing any work when the catalog is empty.
	Classify(src colour.Source, cat *catalog.Catalog) (distribution.Distribution, error)
}

// Options configures the parallel strategies.
type Options struct {
	// Workers bounds the number of goroutines classifying at once.
	// Zero or less means runtime.GOMAXPROCS(0).
	Workers int

	// ChunkSize is the number of consecutive indices per unit of work.
	// Zero or less means DefaultChunkSize.
	ChunkSize int

	Logger hclog.Logger
}

// DefaultOptions returns options sized to the machine.
func DefaultOptions() Options {
	return Options{
		Workers:   runtime.GOMAXPROCS(0),
		ChunkSize: DefaultChunkSize,
	}
}

func (o Options) normalised() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

// ValidNames returns every recognised strategy name.
func ValidNames() []Name {
	return []Name{SingleThreaded, MultiThreadedGenerator, MultiThreadedMerge, PerColor}
}

// ParseName resolves a strategy name case-insensitively. An empty string
// selects Default.
func ParseName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default, nil
	}
	for _, n := range ValidNames() {
		if strings.EqualFold(s, string(n)) {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %s (valid strategies: %v)", ErrUnknownStrategy, s, ValidNames())
}

// New creates the strategy with the given name.
func New(name Name, opts Options) (Strategy, error) {
	opts = opts.normalised()
	logger := opts.Logger.Named("strategy").With("strategy", string(name))

	switch name {
	case SingleThreaded:
		return &sequential{logger: logger}, nil
	case MultiThreadedGenerator:
		return &mapCollect{opts: opts, logger: logger}, nil
	case MultiThreadedMerge:
		return &mapReduce{opts: opts, logger: logger}, nil
	case PerColor:
		return &perColor{logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %s (valid strategies: %v)", ErrUnknownStrategy, name, ValidNames())
	}
}

// prepare builds the resolver and the index to name table shared read-only
// by all workers.
func prepare(cat *catalog.Catalog) (*colour.Resolver, []string, error) {
	if cat == nil {
		return nil, nil, colour.ErrEmptyCatalog
	}
	r, err := cat.Resolver()
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, cat.Len())
	for i := range names {
		names[i] = cat.Entry(i).Name
	}
	return r, names, nil
}
