package dashboard

import (
	"context"
	"fmt"

	"github.com/davidmoss/fplytics/internal/season"
)

// Summary is the dashboard KPI block.
type Summary struct {
	TotalPlayers       int     `json:"total_players"`
	TotalTeams         int     `json:"total_teams"`
	TotalFixtures      int     `json:"total_fixtures"`
	TotalGameweeks     int     `json:"total_gameweeks"`
	AvgPointsPerPlayer float64 `json:"avg_points_per_player"`
	TotalGoals         int     `json:"total_goals"`
	TotalAssists       int     `json:"total_assists"`
	AvgPlayerValue     float64 `json:"avg_player_value"`
}

// Summary aggregates season-wide KPIs, optionally restricted to one team
// (teamID = 0 means no filter). An empty data store yields all-zero KPIs,
// not an error.
func (s *Service) Summary(ctx context.Context, sc *season.Schema, teamID int) (*Summary, error) {
	maxGW, err := s.MaxGameweek(ctx, sc)
	if err != nil {
		return nil, err
	}

	var playerIDs []int
	if teamID != 0 {
		playerIDs, err = s.teamPlayerIDs(ctx, sc, teamID)
		if err != nil {
			return nil, err
		}
		if len(playerIDs) == 0 {
			// Unknown or empty team: zero KPIs, not an error.
			return &Summary{TotalTeams: leagueTeams, TotalFixtures: leagueFixtures, TotalGameweeks: maxGW}, nil
		}
	}

	// Player dimension: head count and average cost.
	pQuery := fmt.Sprintf("SELECT COUNT(*), COALESCE(AVG(now_cost), 0) FROM %s %s", sc.PlayersTable, sc.Where(""))
	pArgs := []any{}
	if teamID != 0 {
		pQuery += fmt.Sprintf(" AND %s = $1", sc.PlayerTeamColumn())
		pArgs = append(pArgs, teamID)
	}

	var totalPlayers int
	var avgCost float64
	if err := s.pool.QueryRow(ctx, pQuery, pArgs...).Scan(&totalPlayers, &avgCost); err != nil {
		return nil, fmt.Errorf("summary players for %s: %w", sc.Name, err)
	}

	// Fact table: performance totals.
	fQuery := fmt.Sprintf(
		"SELECT COALESCE(SUM(total_points), 0), COALESCE(SUM(goals_scored), 0), COALESCE(SUM(assists), 0) FROM %s %s",
		sc.FactTable, sc.Where(""))
	fArgs := []any{}
	if len(playerIDs) > 0 {
		fQuery += fmt.Sprintf(" AND %s = ANY($1)", sc.ColPlayerID)
		fArgs = append(fArgs, playerIDs)
	}

	var totalPoints, totalGoals, totalAssists int64
	if err := s.pool.QueryRow(ctx, fQuery, fArgs...).Scan(&totalPoints, &totalGoals, &totalAssists); err != nil {
		return nil, fmt.Errorf("summary facts for %s: %w", sc.Name, err)
	}

	return buildSummary(totalPlayers, maxGW, totalPoints, totalGoals, totalAssists, avgCost), nil
}

// buildSummary assembles the KPI block with guarded division.
func buildSummary(totalPlayers, maxGW int, totalPoints, totalGoals, totalAssists int64, avgCost float64) *Summary {
	avgPoints := 0.0
	if totalPlayers > 0 {
		avgPoints = round2(float64(totalPoints) / float64(totalPlayers))
	}
	return &Summary{
		TotalPlayers:       totalPlayers,
		TotalTeams:         leagueTeams,
		TotalFixtures:      leagueFixtures,
		TotalGameweeks:     maxGW,
		AvgPointsPerPlayer: avgPoints,
		TotalGoals:         int(totalGoals),
		TotalAssists:       int(totalAssists),
		AvgPlayerValue:     round1(avgCost / 10),
	}
}
