package team

import (
	"errors"
	"fmt"
)

var (
	ErrTransferCountMismatch   = errors.New("transfers in and out must be symmetric")
	ErrPlayerNotOnTeam         = errors.New("player is not on the team")
	ErrCountyCapExceeded       = errors.New("county roster cap exceeded")
	ErrInsufficientBudget      = errors.New("insufficient budget")
	ErrDuplicatePlayerOnRoster = errors.New("duplicate player on roster")
	ErrInvalidRosterSize       = errors.New("invalid roster size")
	ErrInvalidCaptaincy        = errors.New("invalid captaincy assignment")
)

// Rules stores roster and transfer validation parameters.
type Rules struct {
	RosterSize          int
	BudgetCap           int64
	MaxPlayersPerCounty int
}

func DefaultRules() Rules {
	return Rules{
		RosterSize:          15,
		BudgetCap:           100,
		MaxPlayersPerCounty: 3,
	}
}

// ValidateTransfer enforces transfer legality against the current roster
// snapshot without persisting anything. Checks run in a fixed order so the
// first failure reason is deterministic: count mismatch, players-out
// existence and uniqueness, per-county cap over the post-transfer roster,
// then budget. A repeated ID on either side is rejected outright: the swap
// is one-for-one per roster slot, and a duplicated outgoing entry would
// otherwise credit its sale price once per occurrence.
func ValidateTransfer(t Team, playersIn []RosterSlot, playersOut []string, rules Rules) error {
	if len(playersIn) != len(playersOut) {
		return fmt.Errorf("%w: in=%d out=%d", ErrTransferCountMismatch, len(playersIn), len(playersOut))
	}

	outSet := make(map[string]struct{}, len(playersOut))
	for _, playerID := range playersOut {
		if _, ok := t.SlotFor(playerID); !ok {
			return fmt.Errorf("%w: %s", ErrPlayerNotOnTeam, playerID)
		}
		if _, dup := outSet[playerID]; dup {
			return fmt.Errorf("%w: %s listed twice in players out", ErrDuplicatePlayerOnRoster, playerID)
		}
		outSet[playerID] = struct{}{}
	}

	inSet := make(map[string]struct{}, len(playersIn))
	for _, slot := range playersIn {
		if _, dup := inSet[slot.PlayerID]; dup {
			return fmt.Errorf("%w: %s listed twice in players in", ErrDuplicatePlayerOnRoster, slot.PlayerID)
		}
		inSet[slot.PlayerID] = struct{}{}
	}

	// Hypothetical post-transfer roster: (roster - out) + in.
	hypothetical := make([]RosterSlot, 0, len(t.Roster))
	for _, slot := range t.Roster {
		if _, gone := outSet[slot.PlayerID]; gone {
			continue
		}
		hypothetical = append(hypothetical, slot)
	}
	hypothetical = append(hypothetical, playersIn...)

	seen := make(map[string]struct{}, len(hypothetical))
	countyCount := make(map[string]int, len(hypothetical))
	for _, slot := range hypothetical {
		if _, dup := seen[slot.PlayerID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerOnRoster, slot.PlayerID)
		}
		seen[slot.PlayerID] = struct{}{}

		countyCount[slot.County]++
		if countyCount[slot.County] > rules.MaxPlayersPerCounty {
			return fmt.Errorf("%w: county=%s count=%d max=%d",
				ErrCountyCapExceeded, slot.County, countyCount[slot.County], rules.MaxPlayersPerCounty)
		}
	}

	var priceIn, priceOut int64
	for _, slot := range playersIn {
		priceIn += slot.Price
	}
	for playerID := range outSet {
		slot, _ := t.SlotFor(playerID)
		priceOut += slot.Price
	}
	if priceIn > priceOut+t.Budget {
		return fmt.Errorf("%w: needed=%d available=%d", ErrInsufficientBudget, priceIn, priceOut+t.Budget)
	}

	return nil
}

// ValidateRoster checks an initial roster at team creation time: exact size,
// uniqueness, county cap, budget cap, and exactly one captain and one
// distinct vice captain.
func ValidateRoster(slots []RosterSlot, rules Rules) error {
	if len(slots) != rules.RosterSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidRosterSize, rules.RosterSize, len(slots))
	}

	seen := make(map[string]struct{}, len(slots))
	countyCount := make(map[string]int, len(slots))
	captains := 0
	viceCaptains := 0
	var totalCost int64
	var captainID, viceCaptainID string

	for _, slot := range slots {
		if slot.PlayerID == "" {
			return fmt.Errorf("roster slot player id is required")
		}
		if _, dup := seen[slot.PlayerID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerOnRoster, slot.PlayerID)
		}
		seen[slot.PlayerID] = struct{}{}

		countyCount[slot.County]++
		if countyCount[slot.County] > rules.MaxPlayersPerCounty {
			return fmt.Errorf("%w: county=%s count=%d max=%d",
				ErrCountyCapExceeded, slot.County, countyCount[slot.County], rules.MaxPlayersPerCounty)
		}

		if slot.IsCaptain {
			captains++
			captainID = slot.PlayerID
		}
		if slot.IsViceCaptain {
			viceCaptains++
			viceCaptainID = slot.PlayerID
		}
		totalCost += slot.Price
	}

	if totalCost > rules.BudgetCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrInsufficientBudget, rules.BudgetCap, totalCost)
	}
	if captains != 1 || viceCaptains != 1 {
		return fmt.Errorf("%w: exactly one captain and one vice captain required", ErrInvalidCaptaincy)
	}
	if captainID == viceCaptainID {
		return fmt.Errorf("%w: captain and vice captain must be different", ErrInvalidCaptaincy)
	}

	return nil
}
