package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/domain/player"
	"github.com/oconaill/fantasy-gaa/internal/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
	"github.com/oconaill/fantasy-gaa/internal/platform/resilience"
)

// TransferService validates and executes roster transfers. Validation is a
// pure check against a roster snapshot; execution re-validates under the
// team's write lock and commits the swap as a single atomic roster write.
type TransferService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	rules      team.Rules
	logger     *logging.Logger
	locks      resilience.KeyedMutex
	now        func() time.Time
}

// TransferRequest names the players moving in and out of a roster, by id.
// Both sides must be the same length.
type TransferRequest struct {
	PlayersIn  []string
	PlayersOut []string
}

// TransferResult reports an executed transfer: the committed team state and
// the budget movement that produced its new balance.
type TransferResult struct {
	Team      team.Team
	SoldFor   int64
	BoughtFor int64
}

func NewTransferService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	rules team.Rules,
	logger *logging.Logger,
) *TransferService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TransferService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rules:      rules,
		logger:     logger,
		now:        time.Now,
	}
}

// Validate runs the transfer legality checks for a team without changing
// anything. The count check runs before any store lookup so a lopsided
// request fails the same way whether or not the named players exist.
func (s *TransferService) Validate(ctx context.Context, ownerUserID, teamID string, req TransferRequest) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Validate")
	defer span.End()

	if len(req.PlayersIn) != len(req.PlayersOut) {
		return fmt.Errorf("%w: in=%d out=%d", team.ErrTransferCountMismatch, len(req.PlayersIn), len(req.PlayersOut))
	}

	t, err := s.ownedTeam(ctx, ownerUserID, teamID)
	if err != nil {
		return err
	}

	playersIn, err := s.resolveIncoming(ctx, req.PlayersIn)
	if err != nil {
		return err
	}

	return team.ValidateTransfer(t, playersIn, req.PlayersOut, s.rules)
}

// Execute validates and commits a transfer. The swap and the budget
// adjustment land in one roster write guarded by the team's version, so a
// concurrent transfer on the same team either serializes behind the lock or
// fails with ErrConflict instead of splicing rosters together.
func (s *TransferService) Execute(ctx context.Context, ownerUserID, teamID string, req TransferRequest) (TransferResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Execute")
	defer span.End()

	if len(req.PlayersIn) != len(req.PlayersOut) {
		return TransferResult{}, fmt.Errorf("%w: in=%d out=%d", team.ErrTransferCountMismatch, len(req.PlayersIn), len(req.PlayersOut))
	}

	unlock := s.locks.Lock("transfer:" + teamID)
	defer unlock()

	t, err := s.ownedTeam(ctx, ownerUserID, teamID)
	if err != nil {
		return TransferResult{}, err
	}

	playersIn, err := s.resolveIncoming(ctx, req.PlayersIn)
	if err != nil {
		return TransferResult{}, err
	}

	if err := team.ValidateTransfer(t, playersIn, req.PlayersOut, s.rules); err != nil {
		return TransferResult{}, err
	}

	var soldFor, boughtFor int64
	for _, playerID := range req.PlayersOut {
		slot, _ := t.SlotFor(playerID)
		soldFor += slot.Price
	}
	for _, slot := range playersIn {
		boughtFor += slot.Price
	}
	newBudget := t.Budget + soldFor - boughtFor

	committed, err := s.teamRepo.ReplaceRosterSlots(ctx, teamID, req.PlayersOut, playersIn, newBudget, t.Version)
	if err != nil {
		if errors.Is(err, team.ErrVersionConflict) {
			return TransferResult{}, fmt.Errorf("%w: team %s changed during transfer", ErrConflict, teamID)
		}
		return TransferResult{}, fmt.Errorf("execute transfer: %w", err)
	}

	s.logger.InfoContext(ctx, "transfer executed",
		"teamId", teamID,
		"playersIn", len(playersIn),
		"playersOut", len(req.PlayersOut),
		"budget", committed.Budget,
	)

	return TransferResult{Team: committed, SoldFor: soldFor, BoughtFor: boughtFor}, nil
}

func (s *TransferService) ownedTeam(ctx context.Context, ownerUserID, teamID string) (team.Team, error) {
	if strings.TrimSpace(teamID) == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team for transfer: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	if ownerUserID != "" && t.OwnerUserID != ownerUserID {
		return team.Team{}, fmt.Errorf("%w: team %s belongs to another manager", ErrUnauthorized, teamID)
	}
	return t, nil
}

// resolveIncoming loads incoming players and denormalizes them into roster
// slots at their current market price. Incoming players always join as
// non-captain starters.
func (s *TransferService) resolveIncoming(ctx context.Context, playerIDs []string) ([]team.RosterSlot, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("load incoming players: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	slots := make([]team.RosterSlot, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		p, ok := byID[playerID]
		if !ok {
			return nil, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
		}
		slots = append(slots, team.RosterSlot{
			PlayerID: p.ID,
			Position: string(p.Position),
			County:   p.County,
			Price:    p.Price,
		})
	}
	return slots, nil
}
