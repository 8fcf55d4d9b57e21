package season

import (
	"errors"
	"strings"
	"testing"
)

func TestResolve_AllKnownSeasons(t *testing.T) {
	for _, name := range Known() {
		sc, err := Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", name, err)
		}
		if sc.Name != name {
			t.Errorf("Resolve(%q).Name = %q", name, sc.Name)
		}
		if got, want := sc.IsHistorical, name != Current; got != want {
			t.Errorf("Resolve(%q).IsHistorical = %v, want %v", name, got, want)
		}
	}
}

func TestResolve_UnknownSeason(t *testing.T) {
	for _, name := range []string{"", "2015-16", "2025-26", "garbage", "2024"} {
		_, err := Resolve(name)
		if err == nil {
			t.Fatalf("Resolve(%q) = nil error, want UnknownSeasonError", name)
		}
		var use *UnknownSeasonError
		if !errors.As(err, &use) {
			t.Errorf("Resolve(%q) error type = %T", name, err)
		} else if use.Season != name {
			t.Errorf("UnknownSeasonError.Season = %q, want %q", use.Season, name)
		}
	}
}

func TestResolve_CurrentShape(t *testing.T) {
	sc, err := Resolve(Current)
	if err != nil {
		t.Fatal(err)
	}
	if sc.IsHistorical {
		t.Error("current season resolved as historical")
	}
	if sc.FactTable != "fact_player_gameweeks" || sc.PlayersTable != "players" {
		t.Errorf("current tables = %s/%s", sc.FactTable, sc.PlayersTable)
	}
	if sc.ColPlayerID != "player_id" || sc.ColPlayerTableID != "id" || sc.ColGameweek != "event" {
		t.Errorf("current columns = %s/%s/%s", sc.ColPlayerID, sc.ColPlayerTableID, sc.ColGameweek)
	}
	if !sc.SupportsTeams || !sc.SupportsUnderstat || !sc.SupportsStandings {
		t.Error("current season must support teams, understat, and standings")
	}
}

func TestResolve_HistoricalShape(t *testing.T) {
	sc, err := Resolve("2019-20")
	if err != nil {
		t.Fatal(err)
	}
	if !sc.IsHistorical {
		t.Error("2019-20 resolved as current")
	}
	if sc.FactTable != "fpl_player_gameweeks" || sc.PlayersTable != "fpl_season_players" {
		t.Errorf("historical tables = %s/%s", sc.FactTable, sc.PlayersTable)
	}
	if sc.ColPlayerID != "element_id" || sc.ColPlayerTableID != "element_id" || sc.ColGameweek != "gameweek" {
		t.Errorf("historical columns = %s/%s/%s", sc.ColPlayerID, sc.ColPlayerTableID, sc.ColGameweek)
	}
}

func TestResolve_CapabilityFlags(t *testing.T) {
	tests := []struct {
		season    string
		teams     bool
		understat bool
	}{
		{"2016-17", false, true},
		{"2017-18", false, true},
		{"2018-19", false, true},
		{"2019-20", true, true},
		{"2023-24", true, true},
		{Current, true, true},
	}
	for _, tt := range tests {
		sc, err := Resolve(tt.season)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.season, err)
		}
		if sc.SupportsTeams != tt.teams {
			t.Errorf("%s SupportsTeams = %v, want %v", tt.season, sc.SupportsTeams, tt.teams)
		}
		if sc.SupportsUnderstat != tt.understat {
			t.Errorf("%s SupportsUnderstat = %v, want %v", tt.season, sc.SupportsUnderstat, tt.understat)
		}
		if sc.SupportsStandings != tt.teams {
			t.Errorf("%s SupportsStandings = %v, want teams flag %v", tt.season, sc.SupportsStandings, tt.teams)
		}
	}
}

func TestKnown_NewestFirst(t *testing.T) {
	names := Known()
	if len(names) != 9 {
		t.Fatalf("Known() returned %d seasons, want 9", len(names))
	}
	if names[0] != Current {
		t.Errorf("Known()[0] = %q, want current season", names[0])
	}
	if names[len(names)-1] != "2016-17" {
		t.Errorf("Known() last = %q, want 2016-17", names[len(names)-1])
	}
}

func TestFilter(t *testing.T) {
	hist, _ := Resolve("2020-21")
	cur, _ := Resolve(Current)

	if got := hist.Filter("f"); got != "AND f.season = '2020-21'" {
		t.Errorf("historical Filter = %q", got)
	}
	if got := hist.Filter(""); got != "AND season = '2020-21'" {
		t.Errorf("historical Filter no alias = %q", got)
	}
	if got := cur.Filter("f"); got != "" {
		t.Errorf("current Filter = %q, want empty", got)
	}
	if got := cur.Where(""); got != "WHERE 1=1" {
		t.Errorf("current Where = %q", got)
	}
	if got := hist.Where("p"); got != "WHERE p.season = '2020-21'" {
		t.Errorf("historical Where = %q", got)
	}
}

func TestPlayerJoin(t *testing.T) {
	hist, _ := Resolve("2019-20")
	join := hist.PlayerJoin("f", "p")
	for _, want := range []string{"fpl_season_players p", "f.element_id = p.element_id", "p.season = '2019-20'"} {
		if !strings.Contains(join, want) {
			t.Errorf("historical PlayerJoin missing %q in %q", want, join)
		}
	}

	cur, _ := Resolve(Current)
	join = cur.PlayerJoin("f", "p")
	if !strings.Contains(join, "f.player_id = p.id") {
		t.Errorf("current PlayerJoin = %q", join)
	}
	if strings.Contains(join, "season") {
		t.Errorf("current PlayerJoin must not filter by season: %q", join)
	}
}

func TestTeamJoin_Unsupported(t *testing.T) {
	sc, _ := Resolve("2016-17")
	join, sel := sc.TeamJoin("p", "t")
	if join != "" || sel != "" {
		t.Errorf("TeamJoin for teamless season = (%q, %q), want empty", join, sel)
	}
}

func TestUnderstatJoin(t *testing.T) {
	sc, _ := Resolve(Current)
	join, sel := sc.UnderstatJoin("p", "us")
	if !strings.Contains(join, "understat_roster_metrics us") {
		t.Errorf("UnderstatJoin join = %q", join)
	}
	if !strings.Contains(sel, "SUM(us.xg)") {
		t.Errorf("UnderstatJoin select = %q", sel)
	}
}

func TestPlayerTeamColumn(t *testing.T) {
	hist, _ := Resolve("2022-23")
	if got := hist.PlayerTeamColumn(); got != "team_id" {
		t.Errorf("historical PlayerTeamColumn = %q", got)
	}
	cur, _ := Resolve(Current)
	if got := cur.PlayerTeamColumn(); got != "team" {
		t.Errorf("current PlayerTeamColumn = %q", got)
	}
}
