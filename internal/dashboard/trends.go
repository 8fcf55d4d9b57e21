package dashboard

import (
	"context"
	"fmt"

	"github.com/davidmoss/fplytics/internal/season"
	"github.com/davidmoss/fplytics/internal/trend"
)

// Trends returns the raw per-gameweek totals for a season, optionally
// restricted to one team. Rows are sparse: gameweeks with no facts are
// absent, and densifying the series is trend.Fill's job. A team filter
// matching no players yields an empty slice.
func (s *Service) Trends(ctx context.Context, sc *season.Schema, teamID int) ([]trend.Point, error) {
	var playerIDs []int
	if teamID != 0 {
		var err error
		playerIDs, err = s.teamPlayerIDs(ctx, sc, teamID)
		if err != nil {
			return nil, err
		}
		if len(playerIDs) == 0 {
			return nil, nil
		}
	}

	query := fmt.Sprintf(`
		SELECT %s,
		       COALESCE(SUM(total_points), 0),
		       COALESCE(SUM(goals_scored), 0),
		       COALESCE(SUM(assists), 0),
		       COALESCE(AVG(minutes), 0)
		FROM %s
		%s`,
		sc.ColGameweek, sc.FactTable, sc.Where(""))
	args := []any{}
	if len(playerIDs) > 0 {
		query += fmt.Sprintf(" AND %s = ANY($1)", sc.ColPlayerID)
		args = append(args, playerIDs)
	}
	query += fmt.Sprintf(" GROUP BY %s", sc.ColGameweek)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("trends for %s: %w", sc.Name, err)
	}
	defer rows.Close()

	var points []trend.Point
	for rows.Next() {
		var p trend.Point
		var pts, goals, assists int64
		if err := rows.Scan(&p.Gameweek, &pts, &goals, &assists, &p.AvgMinutes); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		p.TotalPoints = int(pts)
		p.TotalGoals = int(goals)
		p.TotalAssists = int(assists)
		points = append(points, p)
	}
	return points, rows.Err()
}

// PlayerTrends returns a player's display name and raw sparse gameweek
// rows. The name is "Unknown" when the player does not exist in the
// season.
func (s *Service) PlayerTrends(ctx context.Context, sc *season.Schema, playerID int) (string, []trend.PlayerPoint, error) {
	nameQuery := fmt.Sprintf(
		"SELECT CONCAT(first_name, ' ', second_name) FROM %s WHERE %s = $1 %s",
		sc.PlayersTable, sc.ColPlayerTableID, sc.Filter(""))

	name := "Unknown"
	nameRows, err := s.pool.Query(ctx, nameQuery, playerID)
	if err != nil {
		return "", nil, fmt.Errorf("player %d name: %w", playerID, err)
	}
	if nameRows.Next() {
		if err := nameRows.Scan(&name); err != nil {
			nameRows.Close()
			return "", nil, fmt.Errorf("scan player name: %w", err)
		}
	}
	nameRows.Close()
	if err := nameRows.Err(); err != nil {
		return "", nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s, total_points, minutes, goals_scored, assists, value / 10.0
		FROM %s
		WHERE %s = $1 %s`,
		sc.ColGameweek, sc.FactTable, sc.ColPlayerID, sc.Filter(""))

	rows, err := s.pool.Query(ctx, query, playerID)
	if err != nil {
		return "", nil, fmt.Errorf("player %d trends: %w", playerID, err)
	}
	defer rows.Close()

	var points []trend.PlayerPoint
	for rows.Next() {
		var p trend.PlayerPoint
		if err := rows.Scan(&p.Gameweek, &p.Points, &p.Minutes, &p.Goals, &p.Assists, &p.Value); err != nil {
			return "", nil, fmt.Errorf("scan player trend row: %w", err)
		}
		points = append(points, p)
	}
	return name, points, rows.Err()
}
