package main

import (
	"github.com/spf13/cobra"

	"github.com/acm-pccoer/events-site/internal/commands"
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show an event detail page",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if site == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return site.Slugs(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.PrintDetail(cmd.OutOrStdout(), site, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
