package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByCounty(ctx context.Context, county string) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	Upsert(ctx context.Context, p Player) error
	// AddTotalPoints applies a season-total delta as a single atomic increment.
	AddTotalPoints(ctx context.Context, playerID string, delta int) (Player, error)
	// SetTotalPoints overwrites the season total; used by recompute only.
	SetTotalPoints(ctx context.Context, playerID string, total int) error
}
