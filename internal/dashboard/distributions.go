package dashboard

import (
	"context"
	"fmt"

	"github.com/davidmoss/fplytics/internal/season"
)

// PositionDistribution is a per-position player breakdown.
type PositionDistribution struct {
	Position    string  `json:"position"`
	PositionID  int     `json:"position_id"`
	PlayerCount int     `json:"player_count"`
	AvgPoints   float64 `json:"avg_points"`
}

// TeamDistribution is a per-team output breakdown.
type TeamDistribution struct {
	TeamName    string `json:"team_name"`
	PlayerCount int    `json:"player_count"`
	TotalPoints int    `json:"total_points"`
	TotalGoals  int    `json:"total_goals"`
}

// Distributions groups chart-ready breakdowns.
type Distributions struct {
	ByPosition []PositionDistribution `json:"by_position"`
	ByTeam     []TeamDistribution     `json:"by_team"`
}

// Distributions returns position and team breakdowns for the season.
// ByTeam is empty for seasons without a team dimension.
func (s *Service) Distributions(ctx context.Context, sc *season.Schema) (*Distributions, error) {
	out := &Distributions{ByPosition: []PositionDistribution{}, ByTeam: []TeamDistribution{}}

	posQuery := fmt.Sprintf(`
		SELECT element_type, COUNT(*), COALESCE(SUM(total_points), 0)
		FROM %s %s
		GROUP BY element_type
		ORDER BY element_type`,
		sc.PlayersTable, sc.Where(""))

	rows, err := s.pool.Query(ctx, posQuery)
	if err != nil {
		return nil, fmt.Errorf("position distribution for %s: %w", sc.Name, err)
	}
	for rows.Next() {
		var code, count int
		var pts int64
		if err := rows.Scan(&code, &count, &pts); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan position row: %w", err)
		}
		d := PositionDistribution{
			Position:    positionLabel(code),
			PositionID:  code,
			PlayerCount: count,
		}
		if count > 0 {
			d.AvgPoints = round2(float64(pts) / float64(count))
		}
		out.ByPosition = append(out.ByPosition, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !sc.SupportsTeams {
		return out, nil
	}

	teamJoin, teamSelect := sc.TeamJoin("p", "t")
	teamQuery := fmt.Sprintf(`
		SELECT COALESCE(%s, 'Unknown'), COUNT(*),
		       COALESCE(SUM(p.total_points), 0),
		       COALESCE(SUM(p.goals_scored), 0)
		FROM %s p
		%s
		%s
		GROUP BY %s
		ORDER BY SUM(p.total_points) DESC`,
		teamSelect, sc.PlayersTable, teamJoin, sc.Where("p"), teamSelect)

	tRows, err := s.pool.Query(ctx, teamQuery)
	if err != nil {
		return nil, fmt.Errorf("team distribution for %s: %w", sc.Name, err)
	}
	defer tRows.Close()

	for tRows.Next() {
		var d TeamDistribution
		var pts, goals int64
		if err := tRows.Scan(&d.TeamName, &d.PlayerCount, &pts, &goals); err != nil {
			return nil, fmt.Errorf("scan team row: %w", err)
		}
		d.TotalPoints = int(pts)
		d.TotalGoals = int(goals)
		out.ByTeam = append(out.ByTeam, d)
	}
	return out, tRows.Err()
}

func positionLabel(code int) string {
	switch code {
	case 1:
		return "GKP"
	case 2:
		return "DEF"
	case 3:
		return "MID"
	case 4:
		return "FWD"
	default:
		return "UNK"
	}
}
