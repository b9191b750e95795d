package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/oconaill/fantasy-gaa/internal/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/infrastructure/repository/memory"
	teammock "github.com/oconaill/fantasy-gaa/internal/mocks/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
)

func TestTransferService_Execute_VersionConflictUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	service := NewTransferService(teamRepo, playerRepo, team.DefaultRules(), logging.NewNop())

	current := transferTeam()
	teamRepo.
		On("GetByID", mock.Anything, "team-transfer").
		Return(current, true, nil).
		Once()
	teamRepo.
		On("ReplaceRosterSlots", mock.Anything, "team-transfer", []string{"cor-fwd-01"}, mock.AnythingOfType("[]team.RosterSlot"), int64(12), int64(1)).
		Return(team.Team{}, fmt.Errorf("%w: expected version 1, stored 2", team.ErrVersionConflict)).
		Once()

	_, err := service.Execute(t.Context(), "user-1", "team-transfer", TransferRequest{
		PlayersIn:  []string{"tip-fwd-01"},
		PlayersOut: []string{"cor-fwd-01"},
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on stale version, got %v", err)
	}
}

func TestTransferService_Execute_StorageErrorUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	service := NewTransferService(teamRepo, playerRepo, team.DefaultRules(), logging.NewNop())

	storageErr := errors.New("connection reset")
	teamRepo.
		On("GetByID", mock.Anything, "team-transfer").
		Return(transferTeam(), true, nil).
		Once()
	teamRepo.
		On("ReplaceRosterSlots", mock.Anything, "team-transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(team.Team{}, storageErr).
		Once()

	_, err := service.Execute(t.Context(), "user-1", "team-transfer", TransferRequest{
		PlayersIn:  []string{"tip-fwd-01"},
		PlayersOut: []string{"cor-fwd-01"},
	})
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("plain storage errors must not map to conflicts, got %v", err)
	}
}
