// Package cli provides the command-line interface for nearestcolour.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/nearestcolour/internal/config"
	"github.com/jmylchreest/nearestcolour/internal/logging"
	"github.com/jmylchreest/nearestcolour/internal/version"
)

// app carries the state shared by all subcommands of one root command.
type app struct {
	verbose    bool
	quiet      bool
	logJSON    bool
	configPath string
	catalog    string
	refresh    bool

	logger hclog.Logger
	cfg    *config.Config
}

// NewRootCmd builds the command tree. Each call returns an independent tree,
// so tests can execute commands without sharing flag state.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "nearestcolour",
		Short: "Classify colours by their nearest named colour",
		Long: `nearestcolour assigns every colour of the 24-bit RGB space, or every pixel
of an image, to the nearest entry of a named colour catalog and reports how
many colours each name claims.

Distances are Euclidean in RGB. Ties go to the catalog entry listed first.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&a.catalog, "catalog", "C", "",
		`colour catalog: "builtin", a CSV file (optionally .gz/.xz/.bz2) or an https URL`)
	rootCmd.PersistentFlags().BoolVar(&a.refresh, "refresh", false, "download remote catalogs again instead of using the cache")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newClassifyCmd(a))
	rootCmd.AddCommand(newImageCmd(a))
	rootCmd.AddCommand(newLookupCmd(a))
	rootCmd.AddCommand(newCatalogCmd(a))

	return rootCmd
}

// setup builds the logger and resolves configuration before any subcommand
// runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = logging.New(logging.Options{
		Verbose: a.verbose,
		Quiet:   a.quiet,
		JSON:    a.logJSON,
		Output:  cmd.ErrOrStderr(),
	})

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog = a.catalog
	}
	a.cfg = cfg

	a.logger.Debug("configuration loaded", "config", a.configPath, "catalog", cfg.Catalog,
		"strategy", cfg.Strategy, "workers", cfg.Workers)
	return nil
}

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Short())
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
