package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/db"
	"github.com/jonathan/ats-ranker/internal/quota"
	"github.com/jonathan/ats-ranker/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the score, coach, rank, usage and owner endpoints.
Quota counters live in memory unless store is "postgres".`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	deps := server.Deps{Logger: logger}

	switch cfg.Store {
	case config.StorePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare database schema: %w", err)
		}
		deps.Store = database
		deps.Auditor = database
		deps.AuditLog = database
		logger.Info("quota store: postgres")
	default:
		store := quota.NewMemoryStore()
		deps.Store = store
		pruneCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go pruneLoop(pruneCtx, store, time.Hour, logger)
		logger.Info("quota store: memory")
	}

	coachService, closeCoach, err := newCoachService(ctx, cfg, logger, false)
	if err != nil {
		return err
	}
	defer closeCoach()
	deps.Coach = coachService

	srv, err := server.New(*cfg, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// pruneLoop drops stale in-memory counters so the map does not grow with
// every caller ever seen.
func pruneLoop(ctx context.Context, store *quota.MemoryStore, every time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := store.Prune(now.UTC().Format(quota.DayLayout)); n > 0 {
				logger.Debug("pruned quota counters", zap.Int("removed", n))
			}
		}
	}
}
