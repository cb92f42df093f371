// Command ustpanel-server serves the Treasury auction panel over HTTP.
// GET /api/v1/panel builds the panel for a requested range; /healthz and
// /metrics cover liveness and Prometheus scraping.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ustpanel/internal/cache"
	"ustpanel/internal/config"
	"ustpanel/internal/fiscaldata"
	"ustpanel/internal/server"
	"ustpanel/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logging)

	cacheDir := cfg.Cache.Dir
	if cacheDir == "" {
		cacheDir, err = cache.DefaultDir()
		if err != nil {
			return fmt.Errorf("resolve cache directory: %w", err)
		}
	}

	client := fiscaldata.NewClient(
		fiscaldata.WithBaseURL(cfg.API.BaseURL),
		fiscaldata.WithPageSize(cfg.API.PageSize),
		fiscaldata.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		fiscaldata.WithRateLimit(cfg.API.RateLimitRPS),
		fiscaldata.WithRetries(cfg.API.MaxRetries, time.Second),
		fiscaldata.WithLogger(logger),
	)
	store := cache.NewStore(cacheDir, logger)
	svc := service.New(client, store, logger)

	srv := server.New(
		fmt.Sprintf(":%d", cfg.Server.Port),
		svc,
		logger,
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout),
		server.WithRequestTimeout(cfg.Server.RequestTimeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
