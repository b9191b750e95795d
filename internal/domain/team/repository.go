package team

import (
	"context"
	"errors"
)

// ErrVersionConflict is returned by roster writes when the stored team
// version no longer matches the caller's snapshot.
var ErrVersionConflict = errors.New("team version conflict")

// Ownership is one result of the roster ownership index: a team that rosters
// a player, with the player's slot so callers can check the bench flag.
type Ownership struct {
	TeamID string
	Slot   RosterSlot
}

// Repository describes fantasy team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Team, error)
	Create(ctx context.Context, t Team) error

	// ListOwningPlayer returns every team holding the player on its roster
	// for the given gameweek, bench slots included.
	ListOwningPlayer(ctx context.Context, gameweekNumber int, playerID string) ([]Ownership, error)

	// AddGameweekPoints atomically increments the team's season total and
	// upserts the per-gameweek ledger entry (new entries start at zero
	// before the add).
	AddGameweekPoints(ctx context.Context, teamID string, gameweekNumber, delta int) error

	// SetGameweekPoints overwrites one ledger entry and rebalances the
	// season total; used by recompute only.
	SetGameweekPoints(ctx context.Context, teamID string, gameweekNumber, points int) error

	// ReplaceRosterSlots commits a validated transfer as one atomic write:
	// remove slots by player id, append the incoming slots preserving their
	// order, and set the new budget. The write fails with
	// ErrVersionConflict unless the stored version equals expectedVersion.
	ReplaceRosterSlots(ctx context.Context, teamID string, removePlayerIDs []string, add []RosterSlot, newBudget int64, expectedVersion int64) (Team, error)
}
