package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/acm-pccoer/events-site/internal/app"
	"github.com/acm-pccoer/events-site/internal/timeline"
)

var (
	exportTab    string
	exportYear   string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a listing as ics, csv or json",
	Long: `Export a listing in the same formats as /api/download.

Example:
  acm-events export --tab past --year 2024 --format csv -o past-2024.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := timeline.FromQuery(site, exportTab, exportYear)
		events := state.Apply(site)

		var out io.Writer = cmd.OutOrStdout()
		if exportOut != "" && exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create %s: %w", exportOut, err)
			}
			defer f.Close()
			out = f
		}

		switch exportFormat {
		case app.FormatICS:
			data, err := app.BuildICS(state.Collection, state.SelectedYear, events, cfg.Location(), false)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		case app.FormatCSV:
			return app.WriteCSV(out, events)
		case app.FormatJSON:
			return app.WriteJSON(out, state.Collection, state.SelectedYear, events)
		default:
			return fmt.Errorf("%s: %q", app.ErrInvalidFormat, exportFormat)
		}
	},
}

func init() {
	collectionFlag(exportCmd, &exportTab)
	exportCmd.Flags().StringVarP(&exportYear, "year", "y", timeline.All, "year to filter to")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", app.FormatICS, "ics, csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "-", "output file")
	rootCmd.AddCommand(exportCmd)
}
