package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/davidmoss/fplytics/internal/season"
)

// Search limits. The dashboard never pages, it just caps.
const (
	defaultSearchLimit = 50
	maxSearchLimit     = 100
)

// sortColumns is the allowed sort-key set for player search. Keys outside
// this map fall back to total_points; nothing caller-supplied ever reaches
// the ORDER BY clause directly.
var sortColumns = map[string]string{
	"total_points": "p.total_points",
	"name":         "p.second_name",
	"cost":         "p.now_cost",
	"form":         "COALESCE(p.form, 0)",
	"position":     "p.element_type",
}

// PlayerSummary is one row of a ranked player listing.
type PlayerSummary struct {
	PlayerID     int     `json:"player_id"`
	PlayerName   string  `json:"player_name"`
	TeamName     string  `json:"team_name"`
	Position     string  `json:"position"`
	TotalPoints  int     `json:"total_points"`
	TotalGoals   int     `json:"total_goals"`
	TotalAssists int     `json:"total_assists"`
	NowCost      float64 `json:"now_cost"`
	Form         float64 `json:"form"`
}

// SearchOptions narrows and orders a player search. Zero values mean no
// filter.
type SearchOptions struct {
	Name     string // substring match on first or second name
	Position string // GKP, DEF, MID, FWD
	TeamID   int
	SortBy   string // key into sortColumns
	Order    string // asc or desc
	Limit    int
}

// orderClause maps a sort request onto the allowlist. Unknown keys sort by
// total points; anything but "asc" sorts descending.
func orderClause(sortBy, order string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = sortColumns["total_points"]
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}

// SearchPlayers returns a ranked player listing for the season.
func (s *Service) SearchPlayers(ctx context.Context, sc *season.Schema, opts SearchOptions) ([]PlayerSummary, error) {
	teamJoin, teamSelect := sc.TeamJoin("p", "t")
	if teamSelect == "" {
		teamSelect = "'Unknown'"
	}

	conditions := []string{"1=1"}
	args := []any{}
	if sc.IsHistorical {
		conditions = append(conditions, fmt.Sprintf("p.season = '%s'", sc.Name))
	}
	if opts.Name != "" {
		args = append(args, opts.Name)
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(p.first_name ILIKE '%%' || $%d || '%%' OR p.second_name ILIKE '%%' || $%d || '%%')", n, n))
	}
	if code := season.PositionCode(opts.Position); code != 0 {
		args = append(args, code)
		conditions = append(conditions, fmt.Sprintf("p.element_type = $%d", len(args)))
	}
	if opts.TeamID != 0 {
		args = append(args, opts.TeamID)
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", sc.PlayerTeamColumn(), len(args)))
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	query := fmt.Sprintf(`
		SELECT p.%s,
		       CONCAT(p.first_name, ' ', p.second_name),
		       %s,
		       %s,
		       COALESCE(p.total_points, 0),
		       COALESCE(p.goals_scored, 0),
		       COALESCE(p.assists, 0),
		       COALESCE(p.now_cost, 0) / 10.0,
		       COALESCE(p.form, 0)
		FROM %s p
		%s
		WHERE %s
		%s
		LIMIT %d`,
		sc.ColPlayerTableID, teamSelect, season.PositionCase("p"),
		sc.PlayersTable, teamJoin,
		strings.Join(conditions, " AND "),
		orderClause(opts.SortBy, opts.Order), limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search players for %s: %w", sc.Name, err)
	}
	defer rows.Close()

	var out []PlayerSummary
	for rows.Next() {
		var p PlayerSummary
		if err := rows.Scan(&p.PlayerID, &p.PlayerName, &p.TeamName, &p.Position,
			&p.TotalPoints, &p.TotalGoals, &p.TotalAssists, &p.NowCost, &p.Form); err != nil {
			return nil, fmt.Errorf("scan player row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// TopPlayer is one row of the leaderboard, aggregated from the fact table.
type TopPlayer struct {
	PlayerID     int    `json:"player_id"`
	PlayerName   string `json:"player_name"`
	TeamName     string `json:"team_name"`
	TotalPoints  int    `json:"total_points"`
	TotalGoals   int    `json:"total_goals"`
	TotalAssists int    `json:"total_assists"`
}

// TopPlayers returns the top performers by summed fact-table points.
func (s *Service) TopPlayers(ctx context.Context, sc *season.Schema, limit int) ([]TopPlayer, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	teamJoin, teamSelect := sc.TeamJoin("p", "t")
	groupBy := fmt.Sprintf("f.%s, p.first_name, p.second_name", sc.ColPlayerID)
	if teamSelect == "" {
		teamSelect = "'Unknown'"
	} else {
		groupBy += ", " + teamSelect
	}

	query := fmt.Sprintf(`
		SELECT f.%s,
		       CONCAT(p.first_name, ' ', p.second_name),
		       %s,
		       COALESCE(SUM(f.total_points), 0),
		       COALESCE(SUM(f.goals_scored), 0),
		       COALESCE(SUM(f.assists), 0)
		FROM %s f
		%s
		%s
		WHERE 1=1 %s
		GROUP BY %s
		ORDER BY SUM(f.total_points) DESC
		LIMIT %d`,
		sc.ColPlayerID, teamSelect,
		sc.FactTable, sc.PlayerJoin("f", "p"), teamJoin,
		sc.Filter("f"),
		groupBy, limit)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("top players for %s: %w", sc.Name, err)
	}
	defer rows.Close()

	var out []TopPlayer
	for rows.Next() {
		var p TopPlayer
		var pts, goals, assists int64
		if err := rows.Scan(&p.PlayerID, &p.PlayerName, &p.TeamName, &pts, &goals, &assists); err != nil {
			return nil, fmt.Errorf("scan top player: %w", err)
		}
		p.TotalPoints = int(pts)
		p.TotalGoals = int(goals)
		p.TotalAssists = int(assists)
		out = append(out, p)
	}
	return out, rows.Err()
}
