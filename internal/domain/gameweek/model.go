package gameweek

import (
	"fmt"
	"time"
)

// Gameweek groups fixtures and the frozen rosters valid for scoring during
// one scheduling period. IsActive is a per-gameweek flag; activating one
// gameweek does not clamp others to inactive.
type Gameweek struct {
	Number           int
	MatchIDs         []string
	TransferDeadline time.Time
	IsActive         bool
}

func (g Gameweek) Validate() error {
	if g.Number <= 0 {
		return fmt.Errorf("gameweek number must be greater than zero")
	}
	if g.TransferDeadline.IsZero() {
		return fmt.Errorf("gameweek transfer deadline is required")
	}

	return nil
}
