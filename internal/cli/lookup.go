package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/report"
)

// match is the JSON form of one lookup result.
type match struct {
	Input    string     `json:"input"`
	Colour   colour.RGB `json:"rgb"`
	Name     string     `json:"name"`
	Nearest  colour.RGB `json:"nearest"`
	Distance float64    `json:"distance"`
}

// lookupOptions holds the flags of the lookup command.
type lookupOptions struct {
	format  string
	preview bool
}

func newLookupCmd(a *app) *cobra.Command {
	var opts lookupOptions
	cmd := &cobra.Command{
		Use:   "lookup <colour>...",
		Short: "Find the nearest named colour for individual colours",
		Long: `Resolve each colour to its nearest catalog entry.

Colours are given as hex ("#c03a58", "c03a58", "#fff") or as a comma
separated triple ("192,58,88").

Examples:
  nearestcolour lookup '#c03a58'
  nearestcolour lookup 10,20,30 ffffff -f json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLookup(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format (table, json)")
	cmd.Flags().BoolVar(&opts.preview, "preview", true, "show colour swatches when writing to a terminal")
	return cmd
}

func (a *app) runLookup(cmd *cobra.Command, args []string, opts lookupOptions) error {
	if opts.format != "table" && opts.format != "json" {
		return fmt.Errorf("unknown output format %q (valid: table, json)", opts.format)
	}

	colours := make([]colour.RGB, len(args))
	for i, arg := range args {
		c, err := colour.Parse(arg)
		if err != nil {
			return err
		}
		colours[i] = c
	}

	cat, err := a.loadCatalog(cmd.Context(), a.cfg.Catalog)
	if err != nil {
		return err
	}

	matches := make([]match, len(args))
	for i, c := range colours {
		entry, dist, err := cat.Nearest(c)
		if err != nil {
			return err
		}
		matches[i] = match{Input: args[i], Colour: c, Name: entry.Name, Nearest: entry.Colour, Distance: dist}
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}
	return writeMatches(out, matches, opts.preview && isTerminal(out))
}

func writeMatches(w io.Writer, matches []match, preview bool) error {
	headers := []string{"Input", "Hex", "Nearest", "Nearest Hex", "Distance"}
	if preview {
		headers = append(headers, "")
	}
	table := report.NewTable(headers)
	table.SetAlign(4, report.AlignRight)
	for _, m := range matches {
		row := []string{m.Input, m.Colour.Hex(), m.Name, m.Nearest.Hex(), strconv.FormatFloat(m.Distance, 'f', 2, 64)}
		if preview {
			row = append(row, colour.ColourPreview(m.Colour, 3)+colour.ColourPreview(m.Nearest, 3))
		}
		table.AddRow(row)
	}
	_, err := io.WriteString(w, table.Render())
	return err
}
