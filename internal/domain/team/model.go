package team

import (
	"fmt"
	"time"
)

// RosterSlot is one player's entry on a fantasy roster. County, Position and
// Price are denormalized copies captured at acquisition time so validation and
// budget accounting never re-fetch the player document.
type RosterSlot struct {
	PlayerID      string
	Position      string
	County        string
	Price         int64
	IsCaptain     bool
	IsViceCaptain bool
	IsSub         bool
}

// GameweekScore is one entry of a team's per-gameweek points ledger.
type GameweekScore struct {
	Gameweek int
	Points   int
}

// Team is a user's fantasy team. Version is a monotonic counter checked and
// incremented on every roster write for optimistic concurrency.
type Team struct {
	ID             string
	OwnerUserID    string
	Name           string
	Roster         []RosterSlot
	Budget         int64
	TotalPoints    int
	GameweekPoints []GameweekScore
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t Team) ValidateBasic() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.OwnerUserID == "" {
		return fmt.Errorf("team owner user id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Budget < 0 {
		return fmt.Errorf("team budget cannot be negative")
	}
	if len(t.Roster) == 0 {
		return fmt.Errorf("team roster is required")
	}

	return nil
}

// SlotFor returns the roster slot holding the given player.
func (t Team) SlotFor(playerID string) (RosterSlot, bool) {
	for _, slot := range t.Roster {
		if slot.PlayerID == playerID {
			return slot, true
		}
	}
	return RosterSlot{}, false
}

// PointsForGameweek returns the ledger entry for one gameweek, zero if absent.
func (t Team) PointsForGameweek(gameweek int) int {
	for _, entry := range t.GameweekPoints {
		if entry.Gameweek == gameweek {
			return entry.Points
		}
	}
	return 0
}
