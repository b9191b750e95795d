package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/oconaill/fantasy-gaa/internal/domain/player"
	"github.com/oconaill/fantasy-gaa/internal/platform/cache"
)

// PlayerService serves the player catalog. Listings are hot read paths on
// every transfer screen, so they go through a short-TTL cache; settlement
// invalidates nothing because cached totals age out within the TTL.
type PlayerService struct {
	playerRepo player.Repository
	listCache  *cache.Store
}

func NewPlayerService(playerRepo player.Repository, listCache *cache.Store) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		listCache:  listCache,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context, county string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	county = strings.TrimSpace(county)
	if s.listCache == nil {
		return s.loadPlayers(ctx, county)
	}

	value, err := s.listCache.GetOrLoad(ctx, "players:list:"+county, func(ctx context.Context) (any, error) {
		return s.loadPlayers(ctx, county)
	})
	if err != nil {
		return nil, err
	}
	players, ok := value.([]player.Player)
	if !ok {
		return s.loadPlayers(ctx, county)
	}
	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return p, nil
}

func (s *PlayerService) UpsertPlayer(ctx context.Context, p player.Player) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpsertPlayer")
	defer span.End()

	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	if s.listCache != nil {
		s.listCache.Delete(ctx, "players:list:")
		s.listCache.Delete(ctx, "players:list:"+p.County)
	}
	return nil
}

func (s *PlayerService) loadPlayers(ctx context.Context, county string) ([]player.Player, error) {
	if county != "" {
		players, err := s.playerRepo.ListByCounty(ctx, county)
		if err != nil {
			return nil, fmt.Errorf("list players by county: %w", err)
		}
		return players, nil
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}
