package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/domain/match"
	"github.com/oconaill/fantasy-gaa/internal/domain/outbox"
	"github.com/oconaill/fantasy-gaa/internal/domain/player"
	"github.com/oconaill/fantasy-gaa/internal/domain/scoring"
	"github.com/oconaill/fantasy-gaa/internal/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/platform/id"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
	"github.com/oconaill/fantasy-gaa/internal/platform/resilience"
)

// SettlementService applies official statistics lines to matches and settles
// the resulting point deltas onto players and the fantasy teams that roster
// them.
type SettlementService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	teamRepo   team.Repository
	outboxRepo outbox.Repository
	rubric     scoring.Rubric
	idGen      id.Generator
	logger     *logging.Logger
	locks      resilience.KeyedMutex
	now        func() time.Time
}

// PerformanceInput carries one statistics line from a settlement caller.
// Any cached points on the wire are ignored; totals always come from the
// rubric.
type PerformanceInput struct {
	Goals         int
	Points        int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
	Saves         int
	PenaltySaves  int
	Hooks         int
	Blocks        int
}

// SettlementResult reports one applied update: the recomputed line, the
// player's new season total, and how the fan-out to owning teams went.
type SettlementResult struct {
	Performance      match.PlayerPerformance
	PlayerTotal      int
	Delta            int
	TeamsUpdated     int
	PropagationError *PartialPropagationError
}

// PartialPropagationError reports a fan-out that settled the player but left
// one or more owning teams unpaid. The player-side write is never rolled
// back; callers reconcile the named teams. A lone "*" entry means the owner
// index itself was unavailable and no team was reached.
type PartialPropagationError struct {
	Gameweek      int
	PlayerID      string
	Delta         int
	FailedTeamIDs []string
}

func (e *PartialPropagationError) Error() string {
	return fmt.Sprintf(
		"settled player %s but failed to update %d team(s) in gameweek %d: %s",
		e.PlayerID, len(e.FailedTeamIDs), e.Gameweek, strings.Join(e.FailedTeamIDs, ", "),
	)
}

func NewSettlementService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	outboxRepo outbox.Repository,
	rubric scoring.Rubric,
	idGen id.Generator,
	logger *logging.Logger,
) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettlementService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		outboxRepo: outboxRepo,
		rubric:     rubric,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// ApplyPerformanceUpdate overwrites one player's statistics line in a match,
// recomputes its rubric total, and settles the delta between the new and old
// totals onto the player's season score and every team rostering the player
// for the match's gameweek.
//
// Updates for the same match and player are serialized; distinct lines settle
// concurrently. A repeated identical update yields a zero delta and touches
// no totals.
func (s *SettlementService) ApplyPerformanceUpdate(ctx context.Context, matchID, playerID string, input PerformanceInput) (SettlementResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.ApplyPerformanceUpdate")
	defer span.End()

	if strings.TrimSpace(matchID) == "" || strings.TrimSpace(playerID) == "" {
		return SettlementResult{}, fmt.Errorf("%w: match id and player id are required", ErrInvalidInput)
	}

	unlock := s.locks.Lock("settlement:" + matchID + ":" + playerID)
	defer unlock()

	m, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return SettlementResult{}, fmt.Errorf("get match for settlement: %w", err)
	}
	if !found {
		return SettlementResult{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	existing, found := m.PerformanceFor(playerID)
	if !found {
		return SettlementResult{}, fmt.Errorf("%w: player %s has no performance in match %s", ErrNotFound, playerID, matchID)
	}

	oldTotal := existing.TotalPoints
	updated := match.PlayerPerformance{
		PlayerID:      playerID,
		Goals:         input.Goals,
		Points:        input.Points,
		YellowCards:   input.YellowCards,
		RedCards:      input.RedCards,
		MinutesPlayed: input.MinutesPlayed,
		Saves:         input.Saves,
		PenaltySaves:  input.PenaltySaves,
		Hooks:         input.Hooks,
		Blocks:        input.Blocks,
	}
	updated.TotalPoints = s.rubric.Score(updated)
	delta := updated.TotalPoints - oldTotal

	if _, err := s.matchRepo.SavePerformance(ctx, matchID, updated); err != nil {
		return SettlementResult{}, fmt.Errorf("update player performance or team points: %w", err)
	}

	result := SettlementResult{
		Performance: updated,
		Delta:       delta,
	}

	if delta == 0 {
		result.PlayerTotal = s.currentPlayerTotal(ctx, playerID)
		return result, nil
	}

	settled, err := s.playerRepo.AddTotalPoints(ctx, playerID, delta)
	if err != nil {
		return SettlementResult{}, fmt.Errorf("update player performance or team points: %w", err)
	}
	result.PlayerTotal = settled.TotalPoints

	updatedTeams, propErr := s.propagate(ctx, m.GameweekNumber, playerID, delta)
	result.TeamsUpdated = updatedTeams
	if propErr != nil {
		result.PropagationError = propErr
		s.recordPropagationFailure(ctx, propErr)
		return result, propErr
	}

	return result, nil
}

// propagate fans the delta out to every team rostering the player for the
// gameweek. Bench slots accrue nothing. Failures on individual teams do not
// stop the sweep; they are collected and reported together.
func (s *SettlementService) propagate(ctx context.Context, gameweekNumber int, playerID string, delta int) (int, *PartialPropagationError) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.propagate")
	defer span.End()

	owners, err := s.teamRepo.ListOwningPlayer(ctx, gameweekNumber, playerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "settlement: listing owning teams failed",
			"gameweek", gameweekNumber,
			"playerId", playerID,
			"error", err.Error(),
		)
		return 0, &PartialPropagationError{
			Gameweek:      gameweekNumber,
			PlayerID:      playerID,
			Delta:         delta,
			FailedTeamIDs: []string{"*"},
		}
	}

	updated := 0
	var failed []string
	for _, owner := range owners {
		if owner.Slot.IsSub {
			continue
		}

		if err := s.teamRepo.AddGameweekPoints(ctx, owner.TeamID, gameweekNumber, delta); err != nil {
			s.logger.ErrorContext(ctx, "settlement: team points update failed",
				"teamId", owner.TeamID,
				"gameweek", gameweekNumber,
				"playerId", playerID,
				"delta", delta,
				"error", err.Error(),
			)
			failed = append(failed, owner.TeamID)
			continue
		}
		updated++
	}

	if len(failed) == 0 {
		return updated, nil
	}

	sort.Strings(failed)
	return updated, &PartialPropagationError{
		Gameweek:      gameweekNumber,
		PlayerID:      playerID,
		Delta:         delta,
		FailedTeamIDs: failed,
	}
}

func (s *SettlementService) recordPropagationFailure(ctx context.Context, propErr *PartialPropagationError) {
	if s.outboxRepo == nil {
		return
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		s.logger.ErrorContext(ctx, "settlement: outbox id generation failed", "error", err.Error())
		return
	}

	entry := outbox.Entry{
		ID:   entryID,
		Kind: outbox.KindPropagationFailure,
		Payload: map[string]any{
			"gameweek":      propErr.Gameweek,
			"playerId":      propErr.PlayerID,
			"delta":         propErr.Delta,
			"failedTeamIds": propErr.FailedTeamIDs,
		},
		CreatedAt: s.now().UTC(),
	}
	if err := s.outboxRepo.Append(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "settlement: outbox append failed",
			"entryId", entryID,
			"error", err.Error(),
		)
	}
}

func (s *SettlementService) currentPlayerTotal(ctx context.Context, playerID string) int {
	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil || !found {
		return 0
	}
	return p.TotalPoints
}
