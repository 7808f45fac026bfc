package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acm-pccoer/events-site/internal/catalog"
	"github.com/acm-pccoer/events-site/internal/config"
)

var (
	configPath  string
	catalogPath string
	logLevel    string

	cfg  *config.Config
	site *catalog.Catalog
)

var rootCmd = &cobra.Command{
	Use:   "acm-events",
	Short: "ACMxPCCOER events website",
	Long: `Serves the ACMxPCCOER events website and inspects its event catalog.

  serve    Run the website
  years    List the timeline years of a listing
  list     List events, optionally filtered to a year
  show     Show one event detail page
  count    Preview the count-up animation in the terminal
  export   Export a listing as ics, csv or json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if cmd.Flags().Changed("catalog") {
			cfg.Site.CatalogFile = catalogPath
		}
		setupLogger(cfg.Log.Level)

		site, err = catalog.LoadFile(cfg.Site.CatalogFile)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./acm-events.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "event catalog YAML (default embedded)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// collectionFlag registers the --tab flag shared by the listing commands
func collectionFlag(cmd *cobra.Command, tab *string) {
	cmd.Flags().StringVarP(tab, "tab", "t", string(catalog.Upcoming), "listing: upcoming or past")
}
