package predict

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davidmoss/fplytics/internal/season"
)

// DefaultMinMinutes filters out players without a meaningful sample before
// scoring.
const DefaultMinMinutes = 300

// Fetch limits for ranked prediction reads.
const (
	defaultBestLimit = 15
	maxBestLimit     = 100
)

// clampBestLimit caps a requested row count; zero or negative requests
// fall back to the default.
func clampBestLimit(limit int) int {
	if limit <= 0 {
		return defaultBestLimit
	}
	if limit > maxBestLimit {
		return maxBestLimit
	}
	return limit
}

// Store persists scored players in player_predicted_points, keyed by
// (player_id, prediction_date). Predictions are regenerated at most once
// per day per season.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a prediction store over the shared pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// PredictedPlayer is one stored, scored player.
type PredictedPlayer struct {
	PlayerID         int        `json:"player_id"`
	PlayerName       string     `json:"player_name"`
	TeamName         string     `json:"team_name"`
	Position         string     `json:"position"`
	NowCost          float64    `json:"now_cost"`
	PredictedPoints  float64    `json:"predicted_points"`
	TotalPoints      int        `json:"total_points"`
	Form             float64    `json:"form"`
	Minutes          int        `json:"minutes"`
	Goals            int        `json:"goals"`
	Assists          int        `json:"assists"`
	PointsPerMillion float64    `json:"points_per_million"`
	Confidence       Confidence `json:"confidence"`
}

// PlayerDetail is a single player's prediction with its inputs exposed.
type PlayerDetail struct {
	PredictedPlayer
	PointsPer90 float64 `json:"points_per_90"`
}

// BestFilters narrows a ranked prediction fetch. Zero values mean no
// filter.
type BestFilters struct {
	Season     string
	Position   string
	TeamID     int
	MaxPrice   float64
	MinPrice   float64
	MinMinutes int
	Limit      int
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS player_predicted_points (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	player_id INT NOT NULL,
	player_name VARCHAR(100),
	team_id INT,
	team_name VARCHAR(100),
	position VARCHAR(10),
	now_cost NUMERIC(5,1),
	predicted_points NUMERIC(6,2),
	total_points INT,
	form NUMERIC(5,2),
	minutes INT,
	goals INT,
	assists INT,
	points_per_million NUMERIC(6,2),
	prediction_date DATE,
	season VARCHAR(10),
	created_at TIMESTAMPTZ DEFAULT now(),
	UNIQUE (player_id, prediction_date)
)`

// EnsureTable creates the predictions table if missing.
func (s *Store) EnsureTable(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("ensure predictions table: %w", err)
	}
	return nil
}

// predictionDate keys one day's batch.
func predictionDate() string {
	return time.Now().UTC().Format("2006-01-02")
}

// EnsureFresh regenerates today's predictions for the season if none
// exist yet.
func (s *Store) EnsureFresh(ctx context.Context, sc *season.Schema, minMinutes int) error {
	if err := s.EnsureTable(ctx); err != nil {
		return err
	}

	var n int
	err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM player_predicted_points WHERE prediction_date = $1 AND season = $2",
		predictionDate(), sc.Name).Scan(&n)
	if err != nil {
		return fmt.Errorf("count predictions: %w", err)
	}
	if n > 0 {
		return nil
	}

	_, err = s.Refresh(ctx, sc, minMinutes)
	return err
}

// Refresh recomputes and upserts predictions for every qualifying player
// in the season. Returns the number of players scored.
func (s *Store) Refresh(ctx context.Context, sc *season.Schema, minMinutes int) (int, error) {
	if err := s.EnsureTable(ctx); err != nil {
		return 0, err
	}
	if minMinutes <= 0 {
		minMinutes = DefaultMinMinutes
	}

	rows, err := s.pool.Query(ctx, aggregatesQuery(sc), minMinutes)
	if err != nil {
		return 0, fmt.Errorf("player aggregates for %s: %w", sc.Name, err)
	}
	defer rows.Close()

	type scored struct {
		playerID int
		name     string
		teamName string
		teamID   *int
		position string
		cost     float64
		stats    PlayerSeason
	}

	var batch []scored
	for rows.Next() {
		var p scored
		var minutes, goals, assists, games int64
		if err := rows.Scan(&p.playerID, &p.name, &p.teamName, &p.teamID, &p.position,
			&p.cost, &p.stats.TotalPoints, &p.stats.Form, &minutes, &goals, &assists, &games); err != nil {
			return 0, fmt.Errorf("scan player aggregates: %w", err)
		}
		p.stats.Minutes = int(minutes)
		p.stats.Goals = int(goals)
		p.stats.Assists = int(assists)
		p.stats.GamesPlayed = int(games)
		p.stats.Position = p.position
		batch = append(batch, p)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	const upsertSQL = `
		INSERT INTO player_predicted_points
			(player_id, player_name, team_id, team_name, position, now_cost,
			 predicted_points, total_points, form, minutes, goals, assists,
			 points_per_million, prediction_date, season)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (player_id, prediction_date) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			team_id = EXCLUDED.team_id,
			team_name = EXCLUDED.team_name,
			position = EXCLUDED.position,
			now_cost = EXCLUDED.now_cost,
			predicted_points = EXCLUDED.predicted_points,
			total_points = EXCLUDED.total_points,
			form = EXCLUDED.form,
			minutes = EXCLUDED.minutes,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			points_per_million = EXCLUDED.points_per_million,
			season = EXCLUDED.season`

	date := predictionDate()
	count := 0
	for _, p := range batch {
		predicted, _ := Score(p.stats)
		perMillion := 0.0
		if p.cost > 0 {
			perMillion = round2f(predicted / p.cost)
		}
		if _, err := s.pool.Exec(ctx, upsertSQL,
			p.playerID, p.name, p.teamID, p.teamName, p.position, p.cost,
			predicted, p.stats.TotalPoints, p.stats.Form, p.stats.Minutes,
			p.stats.Goals, p.stats.Assists, perMillion, date, sc.Name); err != nil {
			return count, fmt.Errorf("upsert prediction for player %d: %w", p.playerID, err)
		}
		count++
	}
	return count, nil
}

// aggregatesQuery builds the per-player season aggregate query for a
// schema shape. The two shapes differ in join keys and season filters, so
// both route entirely through the schema descriptor.
func aggregatesQuery(sc *season.Schema) string {
	teamJoin, teamSelect := sc.TeamJoin("p", "t")
	if teamSelect == "" {
		teamSelect = "'Unknown'"
	}
	groupBy := fmt.Sprintf(
		"p.%s, p.first_name, p.second_name, p.%s, p.element_type, p.now_cost, p.total_points, p.form",
		sc.ColPlayerTableID, sc.PlayerTeamColumn())
	if teamJoin != "" {
		groupBy += fmt.Sprintf(", t.%s", sc.ColTeamName)
	}

	return fmt.Sprintf(`
		SELECT p.%s,
		       CONCAT(p.first_name, ' ', p.second_name),
		       COALESCE(%s, 'Unknown'),
		       p.%s,
		       %s,
		       COALESCE(p.now_cost, 0) / 10.0,
		       COALESCE(p.total_points, 0),
		       COALESCE(p.form, 0),
		       COALESCE(SUM(f.minutes), 0),
		       COALESCE(SUM(f.goals_scored), 0),
		       COALESCE(SUM(f.assists), 0),
		       COUNT(DISTINCT f.%s)
		FROM %s p
		%s
		LEFT JOIN %s f ON p.%s = f.%s %s
		%s
		GROUP BY %s
		HAVING COALESCE(SUM(f.minutes), 0) >= $1
		ORDER BY COALESCE(p.total_points, 0) DESC`,
		sc.ColPlayerTableID, teamSelect, sc.PlayerTeamColumn(), season.PositionCase("p"),
		sc.ColGameweek,
		sc.PlayersTable, teamJoin,
		sc.FactTable, sc.ColPlayerTableID, sc.ColPlayerID, sc.Filter("f"),
		sc.Where("p"),
		groupBy)
}

// BestPlayers returns the ranked prediction list for today's batch,
// regenerating it first if needed.
func (s *Store) BestPlayers(ctx context.Context, sc *season.Schema, f BestFilters) ([]PredictedPlayer, error) {
	minMinutes := f.MinMinutes
	if minMinutes <= 0 {
		minMinutes = DefaultMinMinutes
	}
	if err := s.EnsureFresh(ctx, sc, minMinutes); err != nil {
		return nil, err
	}

	conditions := []string{"prediction_date = $1", "season = $2"}
	args := []any{predictionDate(), sc.Name}
	if f.Position != "" {
		args = append(args, strings.ToUpper(f.Position))
		conditions = append(conditions, fmt.Sprintf("position = $%d", len(args)))
	}
	if f.TeamID != 0 {
		args = append(args, f.TeamID)
		conditions = append(conditions, fmt.Sprintf("team_id = $%d", len(args)))
	}
	if f.MaxPrice > 0 {
		args = append(args, f.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("now_cost <= $%d", len(args)))
	}
	if f.MinPrice > 0 {
		args = append(args, f.MinPrice)
		conditions = append(conditions, fmt.Sprintf("now_cost >= $%d", len(args)))
	}
	if f.MinMinutes > 0 {
		args = append(args, f.MinMinutes)
		conditions = append(conditions, fmt.Sprintf("minutes >= $%d", len(args)))
	}

	limit := clampBestLimit(f.Limit)

	query := fmt.Sprintf(`
		SELECT player_id, player_name, COALESCE(team_name, 'Unknown'), position,
		       now_cost, predicted_points, total_points, form, minutes, goals,
		       assists, points_per_million
		FROM player_predicted_points
		WHERE %s
		ORDER BY predicted_points DESC, player_id ASC
		LIMIT %d`,
		strings.Join(conditions, " AND "), limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("best players: %w", err)
	}
	defer rows.Close()

	var out []PredictedPlayer
	for rows.Next() {
		var p PredictedPlayer
		if err := rows.Scan(&p.PlayerID, &p.PlayerName, &p.TeamName, &p.Position,
			&p.NowCost, &p.PredictedPoints, &p.TotalPoints, &p.Form, &p.Minutes,
			&p.Goals, &p.Assists, &p.PointsPerMillion); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		p.Confidence = confidence(p.Minutes, p.Form)
		out = append(out, p)
	}
	return out, rows.Err()
}

// PlayerDetail returns one player's stored prediction for today, or nil
// when absent.
func (s *Store) PlayerDetail(ctx context.Context, sc *season.Schema, playerID int) (*PlayerDetail, error) {
	if err := s.EnsureFresh(ctx, sc, DefaultMinMinutes); err != nil {
		return nil, err
	}

	const query = `
		SELECT player_id, player_name, COALESCE(team_name, 'Unknown'), position,
		       now_cost, predicted_points, total_points, form, minutes, goals,
		       assists, points_per_million
		FROM player_predicted_points
		WHERE player_id = $1 AND prediction_date = $2 AND season = $3`

	rows, err := s.pool.Query(ctx, query, playerID, predictionDate(), sc.Name)
	if err != nil {
		return nil, fmt.Errorf("player %d prediction: %w", playerID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var d PlayerDetail
	if err := rows.Scan(&d.PlayerID, &d.PlayerName, &d.TeamName, &d.Position,
		&d.NowCost, &d.PredictedPoints, &d.TotalPoints, &d.Form, &d.Minutes,
		&d.Goals, &d.Assists, &d.PointsPerMillion); err != nil {
		return nil, fmt.Errorf("scan prediction detail: %w", err)
	}
	d.Confidence = confidence(d.Minutes, d.Form)
	if d.Minutes > 0 {
		d.PointsPer90 = round2f(float64(d.TotalPoints) / (float64(d.Minutes) / 90.0))
	}
	return &d, nil
}

// Candidates returns today's full scored population for the season as
// optimizer input.
func (s *Store) Candidates(ctx context.Context, sc *season.Schema) ([]Candidate, error) {
	if err := s.EnsureFresh(ctx, sc, DefaultMinMinutes); err != nil {
		return nil, err
	}

	const query = `
		SELECT player_id, player_name, COALESCE(team_name, 'Unknown'), position,
		       now_cost, predicted_points
		FROM player_predicted_points
		WHERE prediction_date = $1 AND season = $2
		ORDER BY player_id`

	rows, err := s.pool.Query(ctx, query, predictionDate(), sc.Name)
	if err != nil {
		return nil, fmt.Errorf("candidates: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.PlayerID, &c.Name, &c.TeamName, &c.Position, &c.Cost, &c.PredictedPoints); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
