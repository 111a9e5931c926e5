package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/dataquality/internal/config"
	"github.com/JonMunkholm/dataquality/internal/metrics"
	"github.com/JonMunkholm/dataquality/internal/web"
)

func newServeCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve scans over HTTP",
		Long: `serve starts the HTTP scan API:

  POST /api/scan              CSV body or multipart "file" -> JSON report
  POST /api/clean             CSV body -> cleaned CSV
  GET  /api/reference/states  state directory
  GET  /healthz, /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

// serve runs the server until ctx ends, then shuts down gracefully and
// waits for in-flight scans.
func serve(ctx context.Context, cfg *config.Config) error {
	states, zips, err := loadReference(ctx, cfg.Reference)
	if err != nil {
		return err
	}

	server, err := web.NewServer(cfg, states, zips, metrics.New())
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}
	slog.Info("server stopped")
	return <-errCh
}
