package main

import (
	"github.com/spf13/cobra"

	"github.com/acm-pccoer/events-site/internal/catalog"
	"github.com/acm-pccoer/events-site/internal/commands"
)

var yearsTab string

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List the timeline years of a listing",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		commands.PrintYears(cmd.OutOrStdout(), site, catalog.ParseCollection(yearsTab))
	},
}

func init() {
	collectionFlag(yearsCmd, &yearsTab)
	rootCmd.AddCommand(yearsCmd)
}
