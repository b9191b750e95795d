package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/oconaill/fantasy-gaa/internal/domain/gameweek"
)

type gameweekRow struct {
	Number           int       `db:"number"`
	MatchIDs         []byte    `db:"match_ids"`
	TransferDeadline time.Time `db:"transfer_deadline"`
	IsActive         bool      `db:"is_active"`
}

func (r gameweekRow) toDomain() (gameweek.Gameweek, error) {
	var matchIDs []string
	if len(r.MatchIDs) > 0 {
		if err := sonic.Unmarshal(r.MatchIDs, &matchIDs); err != nil {
			return gameweek.Gameweek{}, fmt.Errorf("decode match ids for gameweek %d: %w", r.Number, err)
		}
	}
	return gameweek.Gameweek{
		Number:           r.Number,
		MatchIDs:         matchIDs,
		TransferDeadline: r.TransferDeadline,
		IsActive:         r.IsActive,
	}, nil
}

type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	const query = `
SELECT number, match_ids, transfer_deadline, is_active
FROM gameweeks
ORDER BY number ASC`

	var rows []gameweekRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	gameweeks := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		gw, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		gameweeks = append(gameweeks, gw)
	}
	return gameweeks, nil
}

func (r *GameweekRepository) GetByNumber(ctx context.Context, number int) (gameweek.Gameweek, bool, error) {
	const query = `
SELECT number, match_ids, transfer_deadline, is_active
FROM gameweeks
WHERE number = $1`

	var row gameweekRow
	if err := r.db.GetContext(ctx, &row, query, number); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("get gameweek: %w", err)
	}

	gw, err := row.toDomain()
	if err != nil {
		return gameweek.Gameweek{}, false, err
	}
	return gw, true, nil
}

func (r *GameweekRepository) GetActive(ctx context.Context) (gameweek.Gameweek, bool, error) {
	const query = `
SELECT number, match_ids, transfer_deadline, is_active
FROM gameweeks
WHERE is_active
ORDER BY number ASC
LIMIT 1`

	var row gameweekRow
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("get active gameweek: %w", err)
	}

	gw, err := row.toDomain()
	if err != nil {
		return gameweek.Gameweek{}, false, err
	}
	return gw, true, nil
}

func (r *GameweekRepository) Upsert(ctx context.Context, g gameweek.Gameweek) error {
	matchIDs := g.MatchIDs
	if matchIDs == nil {
		matchIDs = []string{}
	}
	encoded, err := sonic.Marshal(matchIDs)
	if err != nil {
		return fmt.Errorf("encode match ids: %w", err)
	}

	const query = `
INSERT INTO gameweeks (number, match_ids, transfer_deadline, is_active)
VALUES ($1, $2, $3, $4)
ON CONFLICT (number) DO UPDATE SET
    transfer_deadline = EXCLUDED.transfer_deadline,
    is_active = EXCLUDED.is_active`

	if _, err := r.db.ExecContext(ctx, query, g.Number, encoded, g.TransferDeadline, g.IsActive); err != nil {
		return fmt.Errorf("upsert gameweek: %w", err)
	}
	return nil
}

// AttachMatch is idempotent; attaching a match already in the list is a no-op.
func (r *GameweekRepository) AttachMatch(ctx context.Context, number int, matchID string) error {
	const query = `
UPDATE gameweeks
SET match_ids = match_ids || to_jsonb($1::text)
WHERE number = $2
  AND NOT match_ids @> to_jsonb($1::text)`

	result, err := r.db.ExecContext(ctx, query, matchID, number)
	if err != nil {
		return fmt.Errorf("attach match to gameweek: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("attach match to gameweek: %w", err)
	}

	// Zero affected rows is either an unknown gameweek or an already
	// attached match; disambiguate with an existence probe.
	if affected == 0 {
		if _, found, err := r.GetByNumber(ctx, number); err != nil {
			return err
		} else if !found {
			return fmt.Errorf("gameweek %d not found", number)
		}
	}
	return nil
}
