package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/oconaill/fantasy-gaa/internal/domain/gameweek"
)

type GameweekRepository struct {
	mu    sync.RWMutex
	items map[int]gameweek.Gameweek
}

func NewGameweekRepository(gameweeks []gameweek.Gameweek) *GameweekRepository {
	items := make(map[int]gameweek.Gameweek, len(gameweeks))
	for _, g := range gameweeks {
		items[g.Number] = cloneGameweek(g)
	}
	return &GameweekRepository{items: items}
}

func (r *GameweekRepository) List(_ context.Context) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.items))
	for _, g := range r.items {
		out = append(out, cloneGameweek(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *GameweekRepository) GetByNumber(_ context.Context, number int) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[number]
	if !ok {
		return gameweek.Gameweek{}, false, nil
	}
	return cloneGameweek(g), true, nil
}

func (r *GameweekRepository) GetActive(_ context.Context) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := false
	var active gameweek.Gameweek
	for _, g := range r.items {
		if !g.IsActive {
			continue
		}
		if !found || g.Number < active.Number {
			active = g
			found = true
		}
	}
	if !found {
		return gameweek.Gameweek{}, false, nil
	}
	return cloneGameweek(active), true, nil
}

func (r *GameweekRepository) Upsert(_ context.Context, g gameweek.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[g.Number] = cloneGameweek(g)
	return nil
}

func (r *GameweekRepository) AttachMatch(_ context.Context, number int, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[number]
	if !ok {
		return fmt.Errorf("gameweek %d not found", number)
	}
	for _, existing := range g.MatchIDs {
		if existing == matchID {
			return nil
		}
	}
	g.MatchIDs = append(g.MatchIDs, matchID)
	r.items[number] = g
	return nil
}

func cloneGameweek(g gameweek.Gameweek) gameweek.Gameweek {
	out := g
	out.MatchIDs = append([]string(nil), g.MatchIDs...)
	return out
}
