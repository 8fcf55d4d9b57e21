// Package season maps a season identifier to the table and column layout
// that season's data lives in. Live ingestion and archival ingestion
// populate structurally different tables, so every query in the API must
// route its table/column references through the resolved Schema instead of
// hardcoding either shape.
package season

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the season served from the live tables. Everything else is
// historical and reads from the archival tables.
const Current = "2024-25"

// --------------------------------------------------------------------------
// Season registry
// --------------------------------------------------------------------------

// known enumerates every season with ingested data, oldest first.
var known = []string{
	"2016-17", "2017-18", "2018-19", "2019-20", "2020-21",
	"2021-22", "2022-23", "2023-24", Current,
}

// seasonsWithTeams lists seasons whose team dimension table was ingested.
// Earlier archives carry player rows only.
var seasonsWithTeams = map[string]bool{
	"2019-20": true, "2020-21": true, "2021-22": true,
	"2022-23": true, "2023-24": true, Current: true,
}

// understatYears lists start years with Understat xG data available.
var understatYears = map[int]bool{
	2016: true, 2017: true, 2018: true, 2019: true, 2020: true,
	2021: true, 2022: true, 2023: true, 2024: true,
}

// --------------------------------------------------------------------------
// Schema descriptor
// --------------------------------------------------------------------------

// Schema describes where one season's data lives. Immutable once resolved;
// callers never modify a returned Schema.
type Schema struct {
	Name         string
	IsHistorical bool

	// Table names
	FactTable     string
	PlayersTable  string
	TeamsTable    string
	FixturesTable string

	// Column names. The fact table and the player dimension disagree on
	// what the player key is called, so both are carried explicitly.
	ColPlayerID      string // player key in the fact table
	ColPlayerTableID string // player key in the players table
	ColTeamID        string
	ColGameweek      string
	ColTeamName      string

	// Capability flags. Queries must check these before referencing the
	// corresponding tables or columns.
	SupportsTeams     bool
	SupportsUnderstat bool
	SupportsStandings bool
	SupportsFixtures  bool
}

// UnknownSeasonError is returned by Resolve for any season outside the
// registry. Surfaced to API callers as a client error.
type UnknownSeasonError struct {
	Season string
}

func (e *UnknownSeasonError) Error() string {
	return fmt.Sprintf("unknown season %q", e.Season)
}

// Known returns every resolvable season, newest first.
func Known() []string {
	out := make([]string, len(known))
	for i, s := range known {
		out[len(known)-1-i] = s
	}
	return out
}

// Resolve returns the schema for a season. It is a total function over the
// registry: every known season resolves, everything else fails with
// *UnknownSeasonError.
func Resolve(name string) (*Schema, error) {
	if !isKnown(name) {
		return nil, &UnknownSeasonError{Season: name}
	}

	if name == Current {
		// Live tables: fact keyed by (player_id, event), players keyed by id.
		return &Schema{
			Name:              name,
			IsHistorical:      false,
			FactTable:         "fact_player_gameweeks",
			PlayersTable:      "players",
			TeamsTable:        "teams",
			FixturesTable:     "fixtures",
			ColPlayerID:       "player_id",
			ColPlayerTableID:  "id",
			ColTeamID:         "id",
			ColGameweek:       "event",
			ColTeamName:       "name",
			SupportsTeams:     true,
			SupportsUnderstat: true,
			SupportsStandings: true,
			SupportsFixtures:  true,
		}, nil
	}

	// Archival tables: fact keyed by (season, element_id, gameweek).
	return &Schema{
		Name:              name,
		IsHistorical:      true,
		FactTable:         "fpl_player_gameweeks",
		PlayersTable:      "fpl_season_players",
		TeamsTable:        "fpl_season_teams",
		FixturesTable:     "fpl_fixtures",
		ColPlayerID:       "element_id",
		ColPlayerTableID:  "element_id",
		ColTeamID:         "team_id",
		ColGameweek:       "gameweek",
		ColTeamName:       "team_name",
		SupportsTeams:     seasonsWithTeams[name],
		SupportsUnderstat: understatYears[startYear(name)],
		SupportsStandings: seasonsWithTeams[name],
		SupportsFixtures:  true,
	}, nil
}

func isKnown(name string) bool {
	for _, s := range known {
		if s == name {
			return true
		}
	}
	return false
}

// startYear converts "2019-20" to 2019. Returns 0 for malformed input.
func startYear(name string) int {
	y, _, ok := strings.Cut(name, "-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(y)
	if err != nil {
		return 0
	}
	return n
}
