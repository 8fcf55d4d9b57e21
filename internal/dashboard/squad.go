package dashboard

import (
	"context"
	"fmt"

	"github.com/davidmoss/fplytics/internal/season"
)

// SquadPlayer is one player in a team squad listing.
type SquadPlayer struct {
	PlayerID    int     `json:"player_id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	TotalPoints int     `json:"total_points"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	Minutes     int     `json:"minutes"`
	NowCost     float64 `json:"now_cost"`
	PtsPer90    float64 `json:"pts_per_90"`
}

// TeamSquad is a team's full player list with season totals.
type TeamSquad struct {
	TeamName string        `json:"team_name"`
	Season   string        `json:"season"`
	Players  []SquadPlayer `json:"players"`
}

// TeamSquad lists every player registered to a team with their season
// totals, ordered by total points. Players without fact rows still appear
// with zeroed totals. An unknown team returns an empty squad.
func (s *Service) TeamSquad(ctx context.Context, sc *season.Schema, teamID int) (*TeamSquad, error) {
	squad := &TeamSquad{TeamName: "Unknown", Season: sc.Name, Players: []SquadPlayer{}}

	if sc.SupportsTeams {
		nameQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 %s",
			sc.ColTeamName, sc.TeamsTable, sc.ColTeamID, sc.Filter(""))
		rows, err := s.pool.Query(ctx, nameQuery, teamID)
		if err != nil {
			return nil, fmt.Errorf("team %d name: %w", teamID, err)
		}
		if rows.Next() {
			if err := rows.Scan(&squad.TeamName); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan team name: %w", err)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	// LEFT JOIN so players with no appearances still show with zeros.
	query := fmt.Sprintf(`
		SELECT p.%s,
		       CONCAT(p.first_name, ' ', p.second_name),
		       %s,
		       COALESCE(SUM(f.total_points), 0),
		       COALESCE(SUM(f.goals_scored), 0),
		       COALESCE(SUM(f.assists), 0),
		       COALESCE(SUM(f.minutes), 0),
		       COALESCE(MAX(p.now_cost), 0) / 10.0
		FROM %s p
		LEFT JOIN %s f ON p.%s = f.%s %s
		WHERE p.%s = $1 %s
		GROUP BY p.%s, p.first_name, p.second_name, p.element_type
		ORDER BY COALESCE(SUM(f.total_points), 0) DESC`,
		sc.ColPlayerTableID, season.PositionCase("p"),
		sc.PlayersTable,
		sc.FactTable, sc.ColPlayerTableID, sc.ColPlayerID, sc.Filter("f"),
		sc.PlayerTeamColumn(), sc.Filter("p"),
		sc.ColPlayerTableID)

	rows, err := s.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("squad for team %d: %w", teamID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p SquadPlayer
		var pts, goals, assists, minutes int64
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.Position, &pts, &goals, &assists, &minutes, &p.NowCost); err != nil {
			return nil, fmt.Errorf("scan squad player: %w", err)
		}
		p.TotalPoints = int(pts)
		p.Goals = int(goals)
		p.Assists = int(assists)
		p.Minutes = int(minutes)
		p.PtsPer90 = pointsPer90(p.TotalPoints, p.Minutes)
		squad.Players = append(squad.Players, p)
	}
	return squad, rows.Err()
}
