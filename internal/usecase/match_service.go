package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/domain/gameweek"
	"github.com/oconaill/fantasy-gaa/internal/domain/match"
	"github.com/oconaill/fantasy-gaa/internal/platform/id"
)

// MatchService manages fixtures and their participating statistics lines.
type MatchService struct {
	matchRepo    match.Repository
	gameweekRepo gameweek.Repository
	idGen        id.Generator
	now          func() time.Time
}

// CreateMatchInput describes a new fixture. Performances lists the
// participating players; their stat lines start zeroed and are filled by
// settlement.
type CreateMatchInput struct {
	GameweekNumber int
	HomeTeam       string
	AwayTeam       string
	PlayerIDs      []string
}

func NewMatchService(matchRepo match.Repository, gameweekRepo gameweek.Repository, idGen id.Generator) *MatchService {
	return &MatchService{
		matchRepo:    matchRepo,
		gameweekRepo: gameweekRepo,
		idGen:        idGen,
		now:          time.Now,
	}
}

// CreateMatch stores the fixture and attaches it to its gameweek.
func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	_, found, err := s.gameweekRepo.GetByNumber(ctx, input.GameweekNumber)
	if err != nil {
		return match.Match{}, fmt.Errorf("get gameweek for match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: gameweek=%d", ErrNotFound, input.GameweekNumber)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	performances := make([]match.PlayerPerformance, 0, len(input.PlayerIDs))
	for _, playerID := range input.PlayerIDs {
		performances = append(performances, match.PlayerPerformance{PlayerID: playerID})
	}

	m := match.Match{
		ID:             matchID,
		GameweekNumber: input.GameweekNumber,
		HomeTeam:       strings.TrimSpace(input.HomeTeam),
		AwayTeam:       strings.TrimSpace(input.AwayTeam),
		Performances:   performances,
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	if err := s.gameweekRepo.AttachMatch(ctx, input.GameweekNumber, matchID); err != nil {
		return match.Match{}, fmt.Errorf("attach match to gameweek: %w", err)
	}

	return m, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return m, nil
}

func (s *MatchService) ListByGameweek(ctx context.Context, gameweekNumber int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByGameweek")
	defer span.End()

	if gameweekNumber <= 0 {
		return nil, fmt.Errorf("%w: gameweek number must be greater than zero", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByGameweek(ctx, gameweekNumber)
	if err != nil {
		return nil, fmt.Errorf("list matches by gameweek: %w", err)
	}
	return matches, nil
}

// UpdateScore records the team-level scoreline. Scores are display strings in
// GAA notation and never feed the fantasy rubric.
func (s *MatchService) UpdateScore(ctx context.Context, matchID, homeScore, awayScore string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateScore")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	if _, found, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return match.Match{}, fmt.Errorf("get match for score update: %w", err)
	} else if !found {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	m, err := s.matchRepo.UpdateScore(ctx, matchID, homeScore, awayScore)
	if err != nil {
		return match.Match{}, fmt.Errorf("update match score: %w", err)
	}
	return m, nil
}
