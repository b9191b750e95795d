package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]team.Team
	now   func() time.Time
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		items[t.ID] = cloneTeam(t)
	}
	return &TeamRepository{items: items, now: time.Now}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return cloneTeam(t), true, nil
}

func (r *TeamRepository) ListByOwner(_ context.Context, ownerUserID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, 2)
	for _, t := range r.items {
		if t.OwnerUserID == ownerUserID {
			out = append(out, cloneTeam(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[t.ID]; exists {
		return fmt.Errorf("team %s already exists", t.ID)
	}
	r.items[t.ID] = cloneTeam(t)
	return nil
}

// ListOwningPlayer scans current rosters. The gameweek argument exists for
// stores that snapshot rosters per gameweek; the in-memory store holds only
// the live roster.
func (r *TeamRepository) ListOwningPlayer(_ context.Context, _ int, playerID string) ([]team.Ownership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Ownership, 0, 4)
	for _, t := range r.items {
		for _, slot := range t.Roster {
			if slot.PlayerID == playerID {
				out = append(out, team.Ownership{TeamID: t.ID, Slot: slot})
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

func (r *TeamRepository) AddGameweekPoints(_ context.Context, teamID string, gameweekNumber, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return fmt.Errorf("team %s not found", teamID)
	}

	t.TotalPoints += delta
	t.GameweekPoints = upsertLedger(t.GameweekPoints, gameweekNumber, func(points int) int { return points + delta })
	t.UpdatedAt = r.now().UTC()
	r.items[teamID] = t
	return nil
}

func (r *TeamRepository) SetGameweekPoints(_ context.Context, teamID string, gameweekNumber, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return fmt.Errorf("team %s not found", teamID)
	}

	t.GameweekPoints = upsertLedger(t.GameweekPoints, gameweekNumber, func(int) int { return points })
	total := 0
	for _, entry := range t.GameweekPoints {
		total += entry.Points
	}
	t.TotalPoints = total
	t.UpdatedAt = r.now().UTC()
	r.items[teamID] = t
	return nil
}

func (r *TeamRepository) ReplaceRosterSlots(_ context.Context, teamID string, removePlayerIDs []string, add []team.RosterSlot, newBudget int64, expectedVersion int64) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[teamID]
	if !ok {
		return team.Team{}, fmt.Errorf("team %s not found", teamID)
	}
	if t.Version != expectedVersion {
		return team.Team{}, fmt.Errorf("%w: expected version %d, stored %d", team.ErrVersionConflict, expectedVersion, t.Version)
	}

	removed := make(map[string]struct{}, len(removePlayerIDs))
	for _, id := range removePlayerIDs {
		removed[id] = struct{}{}
	}

	roster := make([]team.RosterSlot, 0, len(t.Roster))
	for _, slot := range t.Roster {
		if _, gone := removed[slot.PlayerID]; gone {
			continue
		}
		roster = append(roster, slot)
	}
	roster = append(roster, add...)

	t.Roster = roster
	t.Budget = newBudget
	t.Version++
	t.UpdatedAt = r.now().UTC()
	r.items[teamID] = cloneTeam(t)
	return cloneTeam(t), nil
}

func upsertLedger(ledger []team.GameweekScore, gameweekNumber int, apply func(int) int) []team.GameweekScore {
	for i := range ledger {
		if ledger[i].Gameweek == gameweekNumber {
			ledger[i].Points = apply(ledger[i].Points)
			return ledger
		}
	}
	ledger = append(ledger, team.GameweekScore{Gameweek: gameweekNumber, Points: apply(0)})
	sort.Slice(ledger, func(i, j int) bool { return ledger[i].Gameweek < ledger[j].Gameweek })
	return ledger
}

func cloneTeam(t team.Team) team.Team {
	out := t
	out.Roster = append([]team.RosterSlot(nil), t.Roster...)
	out.GameweekPoints = append([]team.GameweekScore(nil), t.GameweekPoints...)
	return out
}
