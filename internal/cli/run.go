package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/nearestcolour/internal/catalog"
	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/config"
	"github.com/jmylchreest/nearestcolour/internal/report"
	"github.com/jmylchreest/nearestcolour/internal/security"
	"github.com/jmylchreest/nearestcolour/internal/strategy"
	"github.com/jmylchreest/nearestcolour/internal/util/cache"
)

// addRunFlags registers the flags shared by commands that classify a source.
// Defaults are shown for help only; values apply when the flag is set.
func addRunFlags(flags *pflag.FlagSet) {
	def := config.Default()
	flags.StringP("strategy", "s", def.Strategy,
		fmt.Sprintf("classification strategy %v", strategy.ValidNames()))
	flags.IntP("workers", "w", def.Workers, "number of worker goroutines")
	flags.Int("chunk-size", def.ChunkSize, "colours per unit of parallel work")
	addOutputFlags(flags)
}

func addOutputFlags(flags *pflag.FlagSet) {
	def := config.Default()
	flags.StringP("format", "f", def.Output.Format, "output format (table, json, csv)")
	flags.IntP("top", "n", def.Output.Top, "show only the first N names (0 for all)")
	flags.Bool("preview", def.Output.Preview, "show colour swatches when writing to a terminal")
}

// applyFlags copies explicitly set flags over cfg and revalidates it.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "strategy":
			cfg.Strategy, err = flags.GetString(f.Name)
		case "workers":
			cfg.Workers, err = flags.GetInt(f.Name)
		case "chunk-size":
			cfg.ChunkSize, err = flags.GetInt(f.Name)
		case "levels":
			cfg.Levels, err = flags.GetInt(f.Name)
		case "format":
			cfg.Output.Format, err = flags.GetString(f.Name)
		case "top":
			cfg.Output.Top, err = flags.GetInt(f.Name)
		case "preview":
			cfg.Output.Preview, err = flags.GetBool(f.Name)
		}
	})
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// runConfig returns a copy of the loaded configuration with the command's
// flags applied.
func (a *app) runConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := *a.cfg
	if err := applyFlags(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (a *app) loadCatalog(ctx context.Context, source string) (*catalog.Catalog, error) {
	loader := catalog.NewLoader(a.logger)
	cached := cache.Wrap(cache.FetchFunc(loader.Fetch), cache.Options{Dir: a.cfg.CacheDir, Refresh: a.refresh})
	loader.Fetch = func(ctx context.Context, url string) ([]byte, error) {
		if err := security.ValidateHTTPURL(url); err != nil {
			return nil, err
		}
		return cached(ctx, url)
	}

	cat, err := loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

// classify runs the configured strategy over src and builds its report.
func (a *app) classify(cfg *config.Config, label string, src colour.Source, cat *catalog.Catalog) (*report.Report, error) {
	name, err := strategy.ParseName(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	opts := cfg.StrategyOptions()
	opts.Logger = a.logger

	s, err := strategy.New(name, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	dist, err := s.Classify(src, cat)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	rep := report.New(string(name), label, dist, cat, int64(src.Len()))
	rep.Elapsed = time.Since(start)
	a.logger.Info("classification complete",
		"strategy", string(name),
		"source", label,
		"colours", humanize.Comma(rep.Total),
		"names", len(rep.Entries),
		"unmatched", len(rep.Unmatched),
		"elapsed", rep.Elapsed)
	return rep, nil
}

// emit enforces that rep accounts for every colour and then writes it. A
// report that fails the check is never written.
func (a *app) emit(cmd *cobra.Command, cfg *config.Config, rep *report.Report) error {
	if err := rep.Verify(); err != nil {
		a.logger.Error("distribution does not account for every colour",
			"strategy", rep.Strategy, "expected", rep.Expected, "total", rep.Total)
		return err
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	opts := report.RenderOptions{
		Format:  format,
		Top:     cfg.Output.Top,
		Preview: cfg.Output.Preview && isTerminal(out),
	}
	if err := report.Write(out, rep, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// isTerminal reports whether w is a terminal that accepts colour escapes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && colour.SupportsANSIColours(f)
}
