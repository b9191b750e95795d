package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/oconaill/fantasy-gaa/internal/domain/match"
)

const matchColumns = "id, gameweek_number, home_team, away_team, home_score, away_score, performances"

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	const query = `
SELECT id, gameweek_number, home_team, away_team, home_score, away_score, performances
FROM matches
WHERE id = $1`

	var row matchRow
	if err := r.db.GetContext(ctx, &row, query, matchID); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	m, err := row.toDomain()
	if err != nil {
		return match.Match{}, false, err
	}
	return m, true, nil
}

func (r *MatchRepository) ListByGameweek(ctx context.Context, gameweekNumber int) ([]match.Match, error) {
	const query = `
SELECT id, gameweek_number, home_team, away_team, home_score, away_score, performances
FROM matches
WHERE gameweek_number = $1
ORDER BY id ASC`

	var rows []matchRow
	if err := r.db.SelectContext(ctx, &rows, query, gameweekNumber); err != nil {
		return nil, fmt.Errorf("list matches by gameweek: %w", err)
	}

	matches := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		m, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	encoded, err := encodePerformances(m.Performances)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO matches (id, gameweek_number, home_team, away_team, home_score, away_score, performances)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := r.db.ExecContext(ctx, query, m.ID, m.GameweekNumber, m.HomeTeam, m.AwayTeam, m.HomeScore, m.AwayScore, encoded); err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

func (r *MatchRepository) UpdateScore(ctx context.Context, matchID, homeScore, awayScore string) (match.Match, error) {
	const query = `
UPDATE matches
SET home_score = $1, away_score = $2
WHERE id = $3
RETURNING id, gameweek_number, home_team, away_team, home_score, away_score, performances`

	var row matchRow
	if err := r.db.GetContext(ctx, &row, query, homeScore, awayScore, matchID); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("match %s not found", matchID)
		}
		return match.Match{}, fmt.Errorf("update match score: %w", err)
	}
	return row.toDomain()
}

// SavePerformance rewrites the match's performances document under a row
// lock so concurrent settlements of different players in the same match do
// not clobber each other's lines.
func (r *MatchRepository) SavePerformance(ctx context.Context, matchID string, perf match.PlayerPerformance) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin tx for save performance: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const selectQuery = `
SELECT id, gameweek_number, home_team, away_team, home_score, away_score, performances
FROM matches
WHERE id = $1
FOR UPDATE`

	var row matchRow
	if err := tx.GetContext(ctx, &row, selectQuery, matchID); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("match %s not found", matchID)
		}
		return match.Match{}, fmt.Errorf("lock match for save performance: %w", err)
	}

	m, err := row.toDomain()
	if err != nil {
		return match.Match{}, err
	}

	replaced := false
	for i, existing := range m.Performances {
		if existing.PlayerID == perf.PlayerID {
			m.Performances[i] = perf
			replaced = true
			break
		}
	}
	if !replaced {
		m.Performances = append(m.Performances, perf)
	}

	encoded, err := encodePerformances(m.Performances)
	if err != nil {
		return match.Match{}, err
	}

	const updateQuery = `UPDATE matches SET performances = $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, updateQuery, encoded, matchID); err != nil {
		return match.Match{}, fmt.Errorf("save performance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit save performance: %w", err)
	}
	return m, nil
}
