package main

import (
	"github.com/spf13/cobra"

	"github.com/acm-pccoer/events-site/internal/catalog"
	"github.com/acm-pccoer/events-site/internal/commands"
	"github.com/acm-pccoer/events-site/internal/timeline"
)

var (
	listTab  string
	listYear string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events of a listing",
	Long: `List the events of the upcoming or past listing.

Example:
  acm-events list --tab past --year 2023`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		commands.PrintEvents(cmd.OutOrStdout(), site, catalog.ParseCollection(listTab), listYear)
	},
}

func init() {
	collectionFlag(listCmd, &listTab)
	listCmd.Flags().StringVarP(&listYear, "year", "y", timeline.All, "year to filter to")
	rootCmd.AddCommand(listCmd)
}
