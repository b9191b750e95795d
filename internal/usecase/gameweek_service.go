package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/domain/gameweek"
)

// GameweekService manages the season schedule. Activating a gameweek does not
// deactivate the others; readers resolve ambiguity by taking the
// lowest-numbered active one.
type GameweekService struct {
	gameweekRepo gameweek.Repository
	now          func() time.Time
}

type UpsertGameweekInput struct {
	Number           int
	TransferDeadline time.Time
	IsActive         bool
}

func NewGameweekService(gameweekRepo gameweek.Repository) *GameweekService {
	return &GameweekService{
		gameweekRepo: gameweekRepo,
		now:          time.Now,
	}
}

func (s *GameweekService) UpsertGameweek(ctx context.Context, input UpsertGameweekInput) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.UpsertGameweek")
	defer span.End()

	if input.Number <= 0 {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek number must be greater than zero", ErrInvalidInput)
	}

	existing, found, err := s.gameweekRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek: %w", err)
	}

	g := gameweek.Gameweek{
		Number:           input.Number,
		TransferDeadline: input.TransferDeadline.UTC(),
		IsActive:         input.IsActive,
	}
	if found {
		g.MatchIDs = existing.MatchIDs
	}

	if err := s.gameweekRepo.Upsert(ctx, g); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("upsert gameweek: %w", err)
	}
	return g, nil
}

func (s *GameweekService) ListGameweeks(ctx context.Context) ([]gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.ListGameweeks")
	defer span.End()

	gameweeks, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}
	return gameweeks, nil
}

func (s *GameweekService) GetGameweek(ctx context.Context, number int) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.GetGameweek")
	defer span.End()

	if number <= 0 {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek number must be greater than zero", ErrInvalidInput)
	}

	g, found, err := s.gameweekRepo.GetByNumber(ctx, number)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek: %w", err)
	}
	if !found {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek=%d", ErrNotFound, number)
	}
	return g, nil
}

func (s *GameweekService) GetActiveGameweek(ctx context.Context) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.GetActiveGameweek")
	defer span.End()

	g, found, err := s.gameweekRepo.GetActive(ctx)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get active gameweek: %w", err)
	}
	if !found {
		return gameweek.Gameweek{}, fmt.Errorf("%w: no active gameweek", ErrNotFound)
	}
	return g, nil
}

// TransfersOpen reports whether the active gameweek still accepts transfers.
func (s *GameweekService) TransfersOpen(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.TransfersOpen")
	defer span.End()

	g, found, err := s.gameweekRepo.GetActive(ctx)
	if err != nil {
		return false, fmt.Errorf("get active gameweek: %w", err)
	}
	if !found {
		return true, nil
	}
	return s.now().UTC().Before(g.TransferDeadline), nil
}
