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

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Matrix/internal/api"
	"github.com/MikeSquared-Agency/Matrix/internal/config"
	"github.com/MikeSquared-Agency/Matrix/internal/hermes"
	"github.com/MikeSquared-Agency/Matrix/internal/metrics"
	"github.com/MikeSquared-Agency/Matrix/internal/relay"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
	"github.com/MikeSquared-Agency/Matrix/internal/store"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the matrix API and metrics servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(os.Stdout, cfg.Logging)
			slog.SetDefault(logger)
			return runServe(cmd.Context(), cfg, logger)
		},
	}
}

func runServe(parent context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	seed, err := loadSeed(cfg)
	if err != nil {
		return err
	}
	engine := scoring.NewEngine(seed)
	logger.Info("matrix loaded", "criteria", len(seed), "seed_file", cfg.Matrix.SeedFile)

	// Journal
	journal, err := openJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer journal.Close()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, "matrix", logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	rl := relay.New(journal, hermesClient, cfg.Relay.BufferSize, logger)
	engine.Subscribe(rl.Enqueue)
	rl.Start(ctx)
	defer rl.Stop()
	metrics.Observe(engine.Analyze())

	router := api.NewRouter(engine, journal, rl, api.RouterConfig{
		AdminToken:         cfg.Server.AdminToken,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	}, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
			cancel()
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return nil
}

// openJournal connects to Postgres when a database URL is configured and falls
// back to the in-memory ring otherwise or when the connection fails.
func openJournal(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Journal, error) {
	if cfg.Database.URL == "" {
		logger.Info("no database configured, journal kept in memory", "capacity", cfg.Journal.MemoryCapacity)
		return store.NewMemoryJournal(cfg.Journal.MemoryCapacity), nil
	}

	pg, err := store.NewPostgresJournal(ctx, cfg.Database.URL)
	if err != nil {
		logger.Warn("failed to connect to database, journal kept in memory", "error", err)
		return store.NewMemoryJournal(cfg.Journal.MemoryCapacity), nil
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		pg.Close()
		return nil, fmt.Errorf("ensure journal schema: %w", err)
	}
	logger.Info("connected to database")
	return pg, nil
}
