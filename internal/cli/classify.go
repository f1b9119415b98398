package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nearestcolour/internal/colour"
)

func newClassifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify the RGB colour space by nearest named colour",
		Long: `Classify every colour of the RGB space against the catalog and report how
many colours each name is nearest to.

The full space has 16,777,216 colours. --levels reduces it to a lattice with
that many evenly spaced values per channel, from 0 to 255 inclusive.

Strategies:
  SingleThreaded          one goroutine, stepping through the space
  MultiThreadedGenerator  parallel resolution, sequential fold (default)
  MultiThreadedMerge      parallel resolution and pairwise merge
  PerColor                not implemented; reports no colours and fails

Examples:
  # Classify the full space with the builtin catalog
  nearestcolour classify

  # Single threaded, top 20 names as JSON
  nearestcolour classify -s SingleThreaded -n 20 -f json

  # Quick run over 32 levels per channel with a custom catalog
  nearestcolour classify --levels 32 -C ./colours.csv.gz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runClassify(cmd)
		},
	}
	addRunFlags(cmd.Flags())
	cmd.Flags().Int("levels", colour.FullLevels, "values per channel (2-256)")
	return cmd
}

func (a *app) runClassify(cmd *cobra.Command) error {
	cfg, err := a.runConfig(cmd)
	if err != nil {
		return err
	}

	space, err := colour.NewSpace(cfg.Levels)
	if err != nil {
		return err
	}
	cat, err := a.loadCatalog(cmd.Context(), cfg.Catalog)
	if err != nil {
		return err
	}

	label := "rgb"
	if space.Levels() != colour.FullLevels {
		label = fmt.Sprintf("rgb/%d", space.Levels())
	}
	rep, err := a.classify(cfg, label, space, cat)
	if err != nil {
		return err
	}
	return a.emit(cmd, cfg, rep)
}
