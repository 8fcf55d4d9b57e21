// Package dashboard is the read-only metrics query layer. Every query is
// shaped by a resolved season.Schema so the same code serves both the live
// and the archival table layouts. Queries are single statements; the data
// store's statement-level snapshot is the only isolation needed.
package dashboard

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davidmoss/fplytics/internal/season"
)

// League shape constants. The Premier League has had 20 teams and 380
// fixtures for every season in the registry.
const (
	leagueTeams    = 20
	leagueFixtures = 380
	// defaultMaxGameweek is used when a season has no fact rows yet.
	defaultMaxGameweek = 38
)

// Service runs dashboard queries against the shared pool.
type Service struct {
	pool *pgxpool.Pool
}

// New creates a dashboard query service.
func New(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// MaxGameweek returns the highest gameweek with fact rows for the season,
// computed over the unfiltered fact table so filtered charts share the
// league-wide x-axis. Falls back to 38 when the season has no rows.
func (s *Service) MaxGameweek(ctx context.Context, sc *season.Schema) (int, error) {
	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), %d) FROM %s %s",
		sc.ColGameweek, defaultMaxGameweek, sc.FactTable, sc.Where(""))

	var maxGW int
	if err := s.pool.QueryRow(ctx, query).Scan(&maxGW); err != nil {
		return 0, fmt.Errorf("max gameweek for %s: %w", sc.Name, err)
	}
	return maxGW, nil
}

// teamPlayerIDs resolves the fact-table player keys belonging to a team.
// An unknown team simply matches nothing; team filters are advisory.
func (s *Service) teamPlayerIDs(ctx context.Context, sc *season.Schema, teamID int) ([]int, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 %s",
		sc.ColPlayerTableID, sc.PlayersTable, sc.PlayerTeamColumn(), sc.Filter(""))

	rows, err := s.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("resolve team %d players: %w", teamID, err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan player id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// pointsPer90 normalizes points to a per-90-minute rate. Players without
// minutes get 0, never NaN.
func pointsPer90(totalPoints, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	return round2(float64(totalPoints) / (float64(minutes) / 90.0))
}
