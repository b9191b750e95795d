package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oconaill/fantasy-gaa/internal/domain/player"
	"github.com/oconaill/fantasy-gaa/internal/platform/querybuilder"
)

const playerColumns = "id, name, club, county, position, price, status, total_points"

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := querybuilder.Select(playerColumns).
		From("players").
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) ListByCounty(ctx context.Context, county string) ([]player.Player, error) {
	query, args, err := querybuilder.Select(playerColumns).
		From("players").
		Where(querybuilder.Eq("county", county)).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by county query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	const query = `
SELECT id, name, club, county, position, price, status, total_points
FROM players
WHERE id = $1`

	var row playerRow
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return row.toDomain(), true, nil
}

// GetByIDs resolves players in bulk; unknown ids are silently absent from the
// result.
func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := make([]any, 0, len(playerIDs))
	for _, id := range playerIDs {
		ids = append(ids, id)
	}

	query, args, err := querybuilder.Select(playerColumns).
		From("players").
		Where(querybuilder.In("id", ids)).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get players by ids query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	query, args, err := querybuilder.InsertInto("players").
		Columns("id", "name", "club", "county", "position", "price", "status", "total_points", "updated_at").
		Values(p.ID, p.Name, p.Club, p.County, string(p.Position), p.Price, string(p.Status), p.TotalPoints, time.Now().UTC()).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    club = EXCLUDED.club,
    county = EXCLUDED.county,
    position = EXCLUDED.position,
    price = EXCLUDED.price,
    status = EXCLUDED.status,
    updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) AddTotalPoints(ctx context.Context, playerID string, delta int) (player.Player, error) {
	query, args, err := querybuilder.Update("players").
		SetExpr("total_points", "total_points + ?", delta).
		Set("updated_at", time.Now().UTC()).
		Where(querybuilder.Eq("id", playerID)).
		Suffix("RETURNING " + playerColumns).
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build add total points query: %w", err)
	}

	var row playerRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, fmt.Errorf("player %s not found", playerID)
		}
		return player.Player{}, fmt.Errorf("add player total points: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PlayerRepository) SetTotalPoints(ctx context.Context, playerID string, total int) error {
	query, args, err := querybuilder.Update("players").
		Set("total_points", total).
		Set("updated_at", time.Now().UTC()).
		Where(querybuilder.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set total points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set player total points: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set player total points: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player %s not found", playerID)
	}
	return nil
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	players := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, row.toDomain())
	}
	return players, nil
}
