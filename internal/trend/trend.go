// Package trend densifies sparse gameweek series. Aggregate queries only
// return gameweeks that have rows, so a blank gameweek (or a team filter
// that excludes one) would otherwise vanish from the chart x-axis.
package trend

// Point is one gameweek of league- or team-level totals.
type Point struct {
	Gameweek     int     `json:"gameweek"`
	TotalPoints  int     `json:"total_points"`
	TotalGoals   int     `json:"total_goals"`
	TotalAssists int     `json:"total_assists"`
	AvgMinutes   float64 `json:"avg_minutes"`
}

// PlayerPoint is one gameweek of a single player's performance.
type PlayerPoint struct {
	Gameweek int     `json:"gameweek"`
	Points   int     `json:"points"`
	Minutes  int     `json:"minutes"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`
	Value    float64 `json:"value"`
}

// Fill returns a dense series covering gameweeks 1..maxGameweek in
// ascending order. Gameweeks present in rows are emitted unchanged;
// missing ones get a zero-valued placeholder. Filling an already-dense
// series is a no-op. maxGameweek should be the highest gameweek observed
// across the whole season so filtered series stay aligned with the
// league-wide axis.
func Fill(rows []Point, maxGameweek int) []Point {
	present := make(map[int]Point, len(rows))
	for _, r := range rows {
		present[r.Gameweek] = r
	}

	out := make([]Point, 0, maxGameweek)
	for gw := 1; gw <= maxGameweek; gw++ {
		if r, ok := present[gw]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, Point{Gameweek: gw})
	}
	return out
}

// FillPlayer is Fill for a single player's series. A zero row means the
// player did not feature that gameweek.
func FillPlayer(rows []PlayerPoint, maxGameweek int) []PlayerPoint {
	present := make(map[int]PlayerPoint, len(rows))
	for _, r := range rows {
		present[r.Gameweek] = r
	}

	out := make([]PlayerPoint, 0, maxGameweek)
	for gw := 1; gw <= maxGameweek; gw++ {
		if r, ok := present[gw]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, PlayerPoint{Gameweek: gw})
	}
	return out
}
