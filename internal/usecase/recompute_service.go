package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/oconaill/fantasy-gaa/internal/domain/gameweek"
	"github.com/oconaill/fantasy-gaa/internal/domain/match"
	"github.com/oconaill/fantasy-gaa/internal/domain/player"
	"github.com/oconaill/fantasy-gaa/internal/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
)

const defaultRecomputeWorkers = 8

// RecomputeService rebuilds player season totals and team gameweek ledgers
// from the stored match performances. It is the repair path when settlement
// left totals and stat lines disagreeing, e.g. after a partial propagation.
type RecomputeService struct {
	matchRepo    match.Repository
	playerRepo   player.Repository
	teamRepo     team.Repository
	gameweekRepo gameweek.Repository
	logger       *logging.Logger
	workers      int
}

// RecomputeReport summarizes one recompute sweep.
type RecomputeReport struct {
	Gameweeks      int
	PlayersUpdated int
	TeamsUpdated   int
	Failures       int
}

func NewRecomputeService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	gameweekRepo gameweek.Repository,
	logger *logging.Logger,
) *RecomputeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecomputeService{
		matchRepo:    matchRepo,
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		gameweekRepo: gameweekRepo,
		logger:       logger,
		workers:      defaultRecomputeWorkers,
	}
}

// RecomputeSeason sweeps every gameweek, derives each player's season total
// and each team's per-gameweek points from the stored performance lines, and
// overwrites the cached aggregates. Player writes fan out over a worker pool;
// individual failures are counted, logged, and do not stop the sweep.
func (s *RecomputeService) RecomputeSeason(ctx context.Context) (RecomputeReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.RecomputeSeason")
	defer span.End()

	gameweeks, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return RecomputeReport{}, fmt.Errorf("list gameweeks for recompute: %w", err)
	}

	report := RecomputeReport{Gameweeks: len(gameweeks)}
	playerTotals := make(map[string]int)

	for _, gw := range gameweeks {
		matches, err := s.matchRepo.ListByGameweek(ctx, gw.Number)
		if err != nil {
			return report, fmt.Errorf("list matches for recompute: %w", err)
		}

		teamPoints := make(map[string]int)
		for _, m := range matches {
			for _, perf := range m.Performances {
				playerTotals[perf.PlayerID] += perf.TotalPoints
				if perf.TotalPoints == 0 {
					continue
				}

				owners, err := s.teamRepo.ListOwningPlayer(ctx, gw.Number, perf.PlayerID)
				if err != nil {
					s.logger.ErrorContext(ctx, "recompute: listing owning teams failed",
						"gameweek", gw.Number,
						"playerId", perf.PlayerID,
						"error", err.Error(),
					)
					report.Failures++
					continue
				}
				for _, owner := range owners {
					if owner.Slot.IsSub {
						continue
					}
					teamPoints[owner.TeamID] += perf.TotalPoints
				}
			}
		}

		for _, teamID := range sortedKeys(teamPoints) {
			if err := s.teamRepo.SetGameweekPoints(ctx, teamID, gw.Number, teamPoints[teamID]); err != nil {
				s.logger.ErrorContext(ctx, "recompute: team ledger write failed",
					"teamId", teamID,
					"gameweek", gw.Number,
					"error", err.Error(),
				)
				report.Failures++
				continue
			}
			report.TeamsUpdated++
		}
	}

	updated, failures := s.writePlayerTotals(ctx, playerTotals)
	report.PlayersUpdated = updated
	report.Failures += failures

	return report, nil
}

func (s *RecomputeService) writePlayerTotals(ctx context.Context, totals map[string]int) (int, int) {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		pool = nil
	}
	if pool != nil {
		defer pool.Release()
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		updated  int
		failures int
	)

	for _, playerID := range sortedKeys(totals) {
		playerID := playerID
		total := totals[playerID]

		task := func() {
			defer wg.Done()

			err := s.playerRepo.SetTotalPoints(ctx, playerID, total)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.ErrorContext(ctx, "recompute: player total write failed",
					"playerId", playerID,
					"error", err.Error(),
				)
				failures++
				return
			}
			updated++
		}

		wg.Add(1)
		if pool == nil {
			task()
			continue
		}
		if err := pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	return updated, failures
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
