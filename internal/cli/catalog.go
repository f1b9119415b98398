package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nearestcolour/internal/catalog"
	"github.com/jmylchreest/nearestcolour/internal/colour"
	"github.com/jmylchreest/nearestcolour/internal/report"
)

func newCatalogCmd(a *app) *cobra.Command {
	var preview bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the entries of the colour catalog",
		Long: `List the loaded colour catalog in resolution order. When two entries are
equally near a colour, the one listed first wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.loadCatalog(cmd.Context(), a.cfg.Catalog)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return writeCatalog(out, cat, preview && isTerminal(out))
		},
	}
	cmd.Flags().BoolVar(&preview, "preview", true, "show colour swatches when writing to a terminal")
	return cmd
}

func writeCatalog(w io.Writer, cat *catalog.Catalog, preview bool) error {
	headers := []string{"#", "Name", "Hex", "R", "G", "B"}
	if preview {
		headers = append(headers, "")
	}
	table := report.NewTable(headers)
	for _, col := range []int{0, 3, 4, 5} {
		table.SetAlign(col, report.AlignRight)
	}
	for i, e := range cat.Entries() {
		row := []string{
			strconv.Itoa(i + 1),
			e.Name,
			e.Colour.Hex(),
			strconv.Itoa(int(e.Colour.R)),
			strconv.Itoa(int(e.Colour.G)),
			strconv.Itoa(int(e.Colour.B)),
		}
		if preview {
			row = append(row, colour.ColourPreview(e.Colour, 4))
		}
		table.AddRow(row)
	}
	if _, err := io.WriteString(w, table.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d colours\n", cat.Len())
	return err
}
