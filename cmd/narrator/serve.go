package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/narrator/internal/api"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the narration HTTP API",
	Long: `Start the HTTP API.

Routes:
  GET  /health
  GET  /api/v1/narrator/status
  GET  /api/v1/templates?q=
  GET  /api/v1/templates/{id}
  POST /api/v1/narrations/compose
  POST /api/v1/narrations/refine

When NARRATOR_API_TOKEN is set, /api/v1 routes require a bearer token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		port := cfg.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		slog.Info("narrator starting", "port", port)

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		gw, closeGateway, err := newGateway(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeGateway()

		srv := api.NewServer(port, cfg.APIToken, cat, gw, slog.Default())
		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		slog.Info("narrator ready", "port", port, "provider", gw.Provider(), "model", gw.Model())

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		slog.Info("narrator stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8760, "port to listen on (overrides NARRATOR_PORT)")
}
