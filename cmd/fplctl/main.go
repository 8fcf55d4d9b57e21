// Command fplctl is the Fplytics operations CLI.
//
// Usage:
//
//	fplctl predictions refresh --season 2024-25
//	fplctl predictions refresh --season 2023-24 --min-minutes 500
//	fplctl predictions cleanup --keep-days 30
//	fplctl seasons
//	fplctl health
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/davidmoss/fplytics/internal/config"
	"github.com/davidmoss/fplytics/internal/db"
	"github.com/davidmoss/fplytics/internal/predict"
	"github.com/davidmoss/fplytics/internal/season"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "fplctl",
		Short: "Fplytics operations CLI",
	}

	root.AddCommand(predictionsCmd())
	root.AddCommand(seasonsCmd())
	root.AddCommand(healthCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// predictions command
// --------------------------------------------------------------------------

func predictionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predictions",
		Short: "Manage the predicted-points store",
	}
	cmd.AddCommand(predictionsRefreshCmd())
	cmd.AddCommand(predictionsCleanupCmd())
	return cmd
}

func predictionsRefreshCmd() *cobra.Command {
	var (
		seasonName string
		minMinutes int
	)
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute and upsert today's prediction batch for a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				sc, err := season.Resolve(seasonName)
				if err != nil {
					return err
				}
				if minMinutes == 0 {
					minMinutes = cfg.PredictionMinMinutes
				}

				start := time.Now()
				scored, err := predict.NewStore(pool.Pool).Refresh(ctx, sc, minMinutes)
				if err != nil {
					return fmt.Errorf("refresh predictions: %w", err)
				}
				logger.Info("Prediction refresh finished",
					"season", sc.Name,
					"players_scored", scored,
					"min_minutes", minMinutes,
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&seasonName, "season", season.Current, "Season name, e.g. 2024-25")
	cmd.Flags().IntVar(&minMinutes, "min-minutes", 0, "Minimum minutes to qualify (0 = config default)")
	return cmd
}

func predictionsCleanupCmd() *cobra.Command {
	var keepDays int
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Purge prediction batches older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				tag, err := pool.Pool.Exec(ctx,
					"DELETE FROM player_predicted_points WHERE prediction_date < NOW() - make_interval(days => $1)",
					keepDays)
				if err != nil {
					return fmt.Errorf("purge predictions: %w", err)
				}
				logger.Info("Prediction cleanup finished",
					"keep_days", keepDays, "purged", tag.RowsAffected())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&keepDays, "keep-days", 30, "Days of prediction batches to keep")
	return cmd
}

// --------------------------------------------------------------------------
// seasons command
// --------------------------------------------------------------------------

func seasonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List known seasons and their capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range season.Known() {
				sc, err := season.Resolve(name)
				if err != nil {
					return err
				}
				marker := " "
				if name == season.Current {
					marker = "*"
				}
				fmt.Printf("%s %s  teams=%-5t standings=%-5t understat=%-5t fact=%s\n",
					marker, sc.Name, sc.SupportsTeams, sc.SupportsStandings,
					sc.SupportsUnderstat, sc.FactTable)
			}
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// health command
// --------------------------------------------------------------------------

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				if err := pool.HealthCheck(ctx); err != nil {
					return fmt.Errorf("database unhealthy: %w", err)
				}
				logger.Info("Database healthy",
					"latency", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// withPool handles config loading, DB connection, and context cancellation.
func withPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
