package player

import "fmt"

// Position represents GAA pitch position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Status reflects a player's availability for selection.
type Status string

const (
	StatusAvailable Status = "available"
	StatusInjured   Status = "injured"
	StatusSuspended Status = "suspended"
)

var AllStatuses = map[Status]struct{}{
	StatusAvailable: {},
	StatusInjured:   {},
	StatusSuspended: {},
}

// Player is a selectable athlete in the fantasy player pool.
// TotalPoints is the season-cumulative fantasy score, derived from match
// performances; it is mutated only through settlement deltas or recompute.
type Player struct {
	ID          string
	Name        string
	Club        string
	County      string
	Position    Position
	Price       int64
	Status      Status
	TotalPoints int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Club == "" {
		return fmt.Errorf("player club is required")
	}
	if p.County == "" {
		return fmt.Errorf("player county is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if _, ok := AllStatuses[p.Status]; !ok {
		return fmt.Errorf("invalid player status: %s", p.Status)
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}

	return nil
}
