// Package listener provides a Postgres LISTEN/NOTIFY consumer for cache
// invalidation. It holds a dedicated pgx connection (not from the pool)
// listening on the `fpl_data_changed` channel.
//
// When the ingestion pipeline writes new gameweek facts it fires
// pg_notify and this consumer purges the affected cache keyspace, so
// dashboards pick up fresh numbers without waiting for TTL expiry.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/davidmoss/fplytics/internal/cache"
	"github.com/davidmoss/fplytics/internal/season"
)

const (
	channel          = "fpl_data_changed"
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// ChangeEvent is the JSON payload from pg_notify('fpl_data_changed', ...).
type ChangeEvent struct {
	Table     string `json:"table"`
	Season    string `json:"season"`
	Gameweek  int    `json:"gameweek"`
	Timestamp int64  `json:"ts"`
}

// Start opens a dedicated connection and listens on the fpl_data_changed
// channel. It reconnects automatically on connection loss. Blocks until
// ctx is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, appCache *cache.Cache, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, appCache, logger)
		if ctx.Err() != nil {
			logger.Info("Data change listener stopped (context cancelled)")
			return
		}

		logger.Error("Data change listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection
// drops or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, appCache *cache.Cache, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+channel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", channel, err)
	}
	logger.Info("Data change listener connected", "channel", channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		var event ChangeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			logger.Warn("Failed to parse data change event",
				"payload", notification.Payload, "error", err)
			continue
		}

		handleChange(appCache, event, logger)
	}
}

// handleChange purges the cache keyspaces affected by a data change. New
// facts invalidate both the dashboard views and the prediction inputs for
// the changed season; other tables only touch the dashboards.
func handleChange(appCache *cache.Cache, event ChangeEvent, logger *slog.Logger) {
	seasonName := event.Season
	if seasonName == "" {
		seasonName = season.Current
	}

	purged := appCache.Purge("dashboard:filters")
	for _, prefix := range []string{
		"dashboard:summary:" + seasonName,
		"dashboard:trends:" + seasonName,
		"dashboard:player-trends:" + seasonName,
		"dashboard:distributions:" + seasonName,
		"dashboard:top-players:" + seasonName,
		"dashboard:standings:" + seasonName,
		"dashboard:players:" + seasonName,
		"dashboard:squad:" + seasonName,
	} {
		purged += appCache.Purge(prefix)
	}

	if isFactTable(event.Table) {
		for _, prefix := range []string{
			"prediction:best:" + seasonName,
			"prediction:player:" + seasonName,
			"prediction:squad:" + seasonName,
		} {
			purged += appCache.Purge(prefix)
		}
	}

	logger.Info("Data change processed",
		"table", event.Table,
		"season", seasonName,
		"gameweek", event.Gameweek,
		"purged_keys", purged)
}

// isFactTable reports whether a change to the named table affects
// prediction inputs.
func isFactTable(table string) bool {
	switch table {
	case "fact_player_gameweeks", "fpl_player_gameweeks", "players", "fpl_season_players":
		return true
	}
	return false
}
