package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-slayer/internal/api"
	"github.com/napolitain/solver-slayer/internal/config"
	"github.com/napolitain/solver-slayer/internal/logger"
)

var (
	configFile string
	initConfig bool
	port       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "Task policy optimizer HTTP server",
		Long: `Serves the optimizer over HTTP: POST /v1/optimize, POST /v1/sweep,
GET /health and GET /metrics.`,
		RunE: runServer,
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "optimizer.toml", "Path to TOML config file")
	rootCmd.Flags().BoolVar(&initConfig, "init-config", false, "Write the default config to --config and exit")
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "Override the API port")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	if initConfig {
		if err := config.Save(configFile, config.DefaultConfig()); err != nil {
			return err
		}
		color.Green("✓ Wrote default config to %s", configFile)
		return nil
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.API.Port = port
	}

	log := logger.Default(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, newHTTPServer(cfg, log), log)
}

func newHTTPServer(cfg config.Config, log *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler:           api.NewServer(cfg, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}
