package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/acm-pccoer/events-site/internal/app"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the events website",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		srv, err := app.NewServer(site, cfg, app.WithStatic(staticFiles))
		if err != nil {
			return err
		}

		if cfg.Site.CatalogFile != "" {
			slog.Info("📂 Using catalog file", "path", cfg.Site.CatalogFile)
		}
		return srv.ListenAndServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}
