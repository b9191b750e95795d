package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/oconaill/fantasy-gaa/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		items[m.ID] = cloneMatch(m)
	}
	return &MatchRepository{items: items}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(m), true, nil
}

func (r *MatchRepository) ListByGameweek(_ context.Context, gameweekNumber int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, 8)
	for _, m := range r.items {
		if m.GameweekNumber == gameweekNumber {
			out = append(out, cloneMatch(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[m.ID]; exists {
		return fmt.Errorf("match %s already exists", m.ID)
	}
	r.items[m.ID] = cloneMatch(m)
	return nil
}

func (r *MatchRepository) UpdateScore(_ context.Context, matchID, homeScore, awayScore string) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %s not found", matchID)
	}
	m.HomeScore = homeScore
	m.AwayScore = awayScore
	r.items[matchID] = m
	return cloneMatch(m), nil
}

func (r *MatchRepository) SavePerformance(_ context.Context, matchID string, perf match.PlayerPerformance) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %s not found", matchID)
	}

	replaced := false
	for i := range m.Performances {
		if m.Performances[i].PlayerID == perf.PlayerID {
			m.Performances[i] = perf
			replaced = true
			break
		}
	}
	if !replaced {
		m.Performances = append(m.Performances, perf)
	}
	r.items[matchID] = m
	return cloneMatch(m), nil
}

func cloneMatch(m match.Match) match.Match {
	out := m
	out.Performances = append([]match.PlayerPerformance(nil), m.Performances...)
	return out
}
