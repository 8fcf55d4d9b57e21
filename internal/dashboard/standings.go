package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/davidmoss/fplytics/internal/season"
)

// StandingRow is one league-table entry. XGFor/XGAgainst are nil when the
// season has no Understat coverage; clients render a dash instead of a
// misleading zero.
type StandingRow struct {
	Rank         int      `json:"rank"`
	TeamName     string   `json:"team_name"`
	Played       int      `json:"played"`
	Wins         int      `json:"wins"`
	Draws        int      `json:"draws"`
	Losses       int      `json:"losses"`
	GoalsFor     int      `json:"goals_for"`
	GoalsAgainst int      `json:"goals_against"`
	GoalDiff     int      `json:"goal_diff"`
	Points       int      `json:"points"`
	XGFor        *float64 `json:"xg_for"`
	XGAgainst    *float64 `json:"xg_against"`
}

// Standings returns the league table for a season, ranked by points, goal
// difference, then team name. Seasons without team coverage return an
// empty table.
func (s *Service) Standings(ctx context.Context, sc *season.Schema) ([]StandingRow, error) {
	if !sc.SupportsStandings {
		return []StandingRow{}, nil
	}

	query := `
		SELECT team_name, played, wins, draws, losses,
		       gf, ga, gd, pts, xg_for, xg_against
		FROM clean_team_season_metrics
		WHERE season = $1`

	rows, err := s.pool.Query(ctx, query, sc.Name)
	if err != nil {
		return nil, fmt.Errorf("standings for %s: %w", sc.Name, err)
	}
	defer rows.Close()

	var table []StandingRow
	for rows.Next() {
		var r StandingRow
		if err := rows.Scan(&r.TeamName, &r.Played, &r.Wins, &r.Draws, &r.Losses,
			&r.GoalsFor, &r.GoalsAgainst, &r.GoalDiff, &r.Points, &r.XGFor, &r.XGAgainst); err != nil {
			return nil, fmt.Errorf("scan standing row: %w", err)
		}
		if !sc.SupportsUnderstat {
			// Capability off: emit explicit nulls even if stale values exist.
			r.XGFor, r.XGAgainst = nil, nil
		}
		table = append(table, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rankStandings(table)
	return table, nil
}

// rankStandings orders the table by points descending, goal difference
// descending, then team name ascending, and assigns 1-based ranks. The
// name tie-break makes the order a strict total order, so equal teams
// always appear in the same sequence.
func rankStandings(table []StandingRow) {
	sort.Slice(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].GoalDiff != table[j].GoalDiff {
			return table[i].GoalDiff > table[j].GoalDiff
		}
		return table[i].TeamName < table[j].TeamName
	})
	for i := range table {
		table[i].Rank = i + 1
	}
}
