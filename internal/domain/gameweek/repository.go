package gameweek

import "context"

// Repository describes gameweek persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Gameweek, error)
	GetByNumber(ctx context.Context, number int) (Gameweek, bool, error)
	// GetActive returns the lowest-numbered active gameweek.
	GetActive(ctx context.Context) (Gameweek, bool, error)
	Upsert(ctx context.Context, g Gameweek) error
	AttachMatch(ctx context.Context, number int, matchID string) error
}
