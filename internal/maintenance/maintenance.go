// Package maintenance runs periodic background tasks as Go tickers.
// Replaces pg_cron — all scheduled work is driven from Go since the API
// is already a persistent, long-running service.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davidmoss/fplytics/internal/predict"
	"github.com/davidmoss/fplytics/internal/season"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	RefreshInterval time.Duration // Regenerate the daily prediction batch
	CleanupInterval time.Duration // Purge stale prediction rows
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 1 * time.Hour,
		CleanupInterval: 6 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, pool *pgxpool.Pool, cfg Config, minMinutes int, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"refresh", cfg.RefreshInterval,
		"cleanup", cfg.CleanupInterval)

	store := predict.NewStore(pool)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Refresh: make sure today's prediction batch exists for the live
	// season. The batch is keyed by date, so off-day ticks are no-ops.
	if cfg.RefreshInterval > 0 {
		t := time.NewTicker(cfg.RefreshInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { refreshPredictions(ctx, store, minMinutes, logger) })
	}

	// Cleanup: drop prediction batches older than the retention window
	if cfg.CleanupInterval > 0 {
		t := time.NewTicker(cfg.CleanupInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { cleanup(ctx, pool, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// refreshPredictions regenerates the current season's daily batch when a
// new UTC day has started since the last one.
func refreshPredictions(ctx context.Context, store *predict.Store, minMinutes int, logger *slog.Logger) {
	sc, err := season.Resolve(season.Current)
	if err != nil {
		logger.Error("Refresh: resolve current season", "error", err)
		return
	}

	start := time.Now()
	if err := store.EnsureFresh(ctx, sc, minMinutes); err != nil {
		logger.Warn("Refresh: prediction batch failed",
			"season", sc.Name, "error", err)
		return
	}
	logger.Info("Refresh: prediction batch current",
		"season", sc.Name, "duration", time.Since(start).Round(time.Millisecond))
}

// cleanup purges prediction batches older than 30 days. Recent batches
// stay queryable for day-over-day comparisons.
func cleanup(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) {
	tag, err := pool.Exec(ctx, `
		DELETE FROM player_predicted_points
		WHERE prediction_date < NOW() - INTERVAL '30 days'`)
	if err != nil {
		logger.Warn("Cleanup: failed to purge old predictions", "error", err)
	} else if tag.RowsAffected() > 0 {
		logger.Info("Cleanup: purged old predictions", "count", tag.RowsAffected())
	}
}
