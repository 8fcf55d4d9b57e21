package dashboard

import (
	"context"
	"fmt"

	"github.com/davidmoss/fplytics/internal/season"
)

// TeamRef is a team picker entry.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Filters lists the filter values the dashboard UI can offer.
type Filters struct {
	Seasons   []string  `json:"seasons"`
	Teams     []TeamRef `json:"teams"`
	Gameweeks []int     `json:"gameweeks"`
}

// Filters returns available seasons, current-season teams, and the
// gameweek range. Seasons come from the schema registry rather than the
// data store: a season without a descriptor could not be queried anyway.
func (s *Service) Filters(ctx context.Context) (*Filters, error) {
	out := &Filters{Seasons: season.Known(), Teams: []TeamRef{}}
	for gw := 1; gw <= defaultMaxGameweek; gw++ {
		out.Gameweeks = append(out.Gameweeks, gw)
	}

	sc, err := season.Resolve(season.Current)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s",
		sc.ColTeamID, sc.ColTeamName, sc.TeamsTable, sc.ColTeamName)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t TeamRef
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		out.Teams = append(out.Teams, t)
	}
	return out, rows.Err()
}
