package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/acm-pccoer/events-site/internal/commands"
	"github.com/acm-pccoer/events-site/internal/counter"
)

var (
	countSplit bool
	countPlus  bool
)

var countCmd = &cobra.Command{
	Use:   "count <target>",
	Short: "Preview the count-up animation",
	Long: `Animate a count from 0 to target using the configured duration and
step count, the same way the website's stat counters do.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid target %q: %w", args[0], err)
		}
		return commands.Count(cmd.Context(), cmd.OutOrStdout(), target, commands.CountOptions{
			Split: countSplit,
			Plus:  countPlus,
			Counter: []counter.Option{
				counter.WithDuration(cfg.Counter.Duration),
				counter.WithSteps(cfg.Counter.Steps),
			},
		})
	},
}

func init() {
	countCmd.Flags().BoolVar(&countSplit, "split", false, "show zero-padded digits")
	countCmd.Flags().BoolVar(&countPlus, "plus", false, `append "+" when done`)
	rootCmd.AddCommand(countCmd)
}
