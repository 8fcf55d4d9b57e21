package season

import "fmt"

// SQL fragment builders. Fragments interpolate the season name directly;
// that is safe because Resolve only hands out names from the closed
// registry, never caller input.

// Filter returns an AND fragment restricting a table to this season, or ""
// for the current season whose tables hold a single season.
func (s *Schema) Filter(alias string) string {
	if !s.IsHistorical {
		return ""
	}
	return fmt.Sprintf("AND %sseason = '%s'", prefix(alias), s.Name)
}

// Where returns a standalone WHERE clause restricting a table to this
// season. Always emits a WHERE so callers can append further AND terms.
func (s *Schema) Where(alias string) string {
	if !s.IsHistorical {
		return "WHERE 1=1"
	}
	return fmt.Sprintf("WHERE %sseason = '%s'", prefix(alias), s.Name)
}

// PlayerJoin joins the fact table to the player dimension. The two shapes
// disagree on the player key column and the historical dimension is
// additionally keyed by season.
func (s *Schema) PlayerJoin(factAlias, playerAlias string) string {
	if s.IsHistorical {
		return fmt.Sprintf("JOIN %s %s ON %s.%s = %s.%s AND %s.season = '%s'",
			s.PlayersTable, playerAlias,
			factAlias, s.ColPlayerID, playerAlias, s.ColPlayerTableID,
			playerAlias, s.Name)
	}
	return fmt.Sprintf("JOIN %s %s ON %s.%s = %s.%s",
		s.PlayersTable, playerAlias,
		factAlias, s.ColPlayerID, playerAlias, s.ColPlayerTableID)
}

// TeamJoin joins the player dimension to the team dimension. Returns the
// join clause and the select fragment for the team name, or ("", "") when
// the season carries no team table.
func (s *Schema) TeamJoin(playerAlias, teamAlias string) (join, sel string) {
	if !s.SupportsTeams {
		return "", ""
	}
	sel = fmt.Sprintf("%s.%s", teamAlias, s.ColTeamName)
	if s.IsHistorical {
		join = fmt.Sprintf("LEFT JOIN %s %s ON %s.team_id = %s.%s AND %s.season = '%s'",
			s.TeamsTable, teamAlias, playerAlias, teamAlias, s.ColTeamID,
			teamAlias, s.Name)
		return join, sel
	}
	join = fmt.Sprintf("LEFT JOIN %s %s ON %s.team = %s.%s",
		s.TeamsTable, teamAlias, playerAlias, teamAlias, s.ColTeamID)
	return join, sel
}

// UnderstatJoin joins Understat roster metrics by player name (the two
// sources share no ID space). Returns ("", "") when xG data is not
// available for the season; callers emit null xG fields in that case.
func (s *Schema) UnderstatJoin(playerAlias, usAlias string) (join, sel string) {
	if !s.SupportsUnderstat {
		return "", ""
	}
	join = fmt.Sprintf(
		"LEFT JOIN understat_roster_metrics %s ON %s.player = CONCAT(%s.first_name, ' ', %s.second_name)",
		usAlias, usAlias, playerAlias, playerAlias)
	// Aggregated so grouped queries stay valid.
	sel = fmt.Sprintf("COALESCE(SUM(%s.xg), 0) AS xg, COALESCE(SUM(%s.xa), 0) AS xa", usAlias, usAlias)
	return join, sel
}

// PlayerTeamColumn returns the column on the players table that references
// the player's team.
func (s *Schema) PlayerTeamColumn() string {
	if s.IsHistorical {
		return "team_id"
	}
	return "team"
}

// PositionCase translates FPL element_type codes to position labels. Both
// schema shapes store positions as the same 1..4 codes.
func PositionCase(alias string) string {
	return fmt.Sprintf(
		"CASE %s.element_type WHEN 1 THEN 'GKP' WHEN 2 THEN 'DEF' WHEN 3 THEN 'MID' WHEN 4 THEN 'FWD' ELSE 'UNK' END",
		alias)
}

// PositionCode maps a position label back to its element_type code.
// Returns 0 for unknown labels.
func PositionCode(position string) int {
	switch position {
	case "GKP":
		return 1
	case "DEF":
		return 2
	case "MID":
		return 3
	case "FWD":
		return 4
	default:
		return 0
	}
}

func prefix(alias string) string {
	if alias == "" {
		return ""
	}
	return alias + "."
}
