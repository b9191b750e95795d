package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/oconaill/fantasy-gaa/internal/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/infrastructure/repository/memory"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
)

func transferTeam() team.Team {
	return team.Team{
		ID:          "team-transfer",
		OwnerUserID: "user-1",
		Name:        "Transfer Side",
		Roster: []team.RosterSlot{
			{PlayerID: "gal-gk-01", Position: "GK", County: memory.CountyGalway, Price: 5, IsCaptain: true},
			{PlayerID: "gal-def-01", Position: "DEF", County: memory.CountyGalway, Price: 6, IsViceCaptain: true},
			{PlayerID: "gal-fwd-01", Position: "FWD", County: memory.CountyGalway, Price: 8},
			{PlayerID: "cor-fwd-01", Position: "FWD", County: memory.CountyCork, Price: 9},
			{PlayerID: "lim-fwd-01", Position: "FWD", County: memory.CountyLimerick, Price: 9},
		},
		Budget:  10,
		Version: 1,
	}
}

func newTransferService(teams ...team.Team) (*TransferService, *memory.TeamRepository) {
	teamRepo := memory.NewTeamRepository(teams)
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	service := NewTransferService(teamRepo, playerRepo, team.DefaultRules(), logging.NewNop())
	return service, teamRepo
}

func TestTransferService_Execute_SwapsRosterAndBudget(t *testing.T) {
	service, teamRepo := newTransferService(transferTeam())

	// Sell cor-fwd-01 (roster price 9), buy tip-fwd-01 (market price 7).
	result, err := service.Execute(t.Context(), "user-1", "team-transfer", TransferRequest{
		PlayersIn:  []string{"tip-fwd-01"},
		PlayersOut: []string{"cor-fwd-01"},
	})
	if err != nil {
		t.Fatalf("execute transfer failed: %v", err)
	}

	if result.SoldFor != 9 || result.BoughtFor != 7 {
		t.Fatalf("expected sold=9 bought=7, got sold=%d bought=%d", result.SoldFor, result.BoughtFor)
	}
	if result.Team.Budget != 12 {
		t.Fatalf("expected budget 12 after transfer, got %d", result.Team.Budget)
	}
	if result.Team.Version != 2 {
		t.Fatalf("expected version bump to 2, got %d", result.Team.Version)
	}
	if _, stillThere := result.Team.SlotFor("cor-fwd-01"); stillThere {
		t.Fatalf("expected cor-fwd-01 removed from roster")
	}
	slot, ok := result.Team.SlotFor("tip-fwd-01")
	if !ok {
		t.Fatalf("expected tip-fwd-01 on roster")
	}
	if slot.County != memory.CountyTipperary || slot.Price != 7 {
		t.Fatalf("expected denormalized county/price from catalog, got %+v", slot)
	}

	stored, _, err := teamRepo.GetByID(t.Context(), "team-transfer")
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if stored.Budget != 12 || len(stored.Roster) != 5 {
		t.Fatalf("expected persisted budget=12 roster=5, got budget=%d roster=%d", stored.Budget, len(stored.Roster))
	}
}

func TestTransferService_Execute_CountMismatchBeforeLookups(t *testing.T) {
	service, _ := newTransferService(transferTeam())

	// Neither team nor players exist; the symmetry check still wins.
	err := service.Validate(t.Context(), "user-1", "team-missing", TransferRequest{
		PlayersIn:  []string{"nope-1", "nope-2"},
		PlayersOut: []string{"nope-3"},
	})
	if !errors.Is(err, team.ErrTransferCountMismatch) {
		t.Fatalf("expected count mismatch, got %v", err)
	}
}

func TestTransferService_Execute_ValidationOrder(t *testing.T) {
	service, _ := newTransferService(transferTeam())

	_, err := service.Execute(t.Context(), "user-1", "team-transfer", TransferRequest{
		PlayersIn:  []string{"tip-fwd-01"},
		PlayersOut: []string{"tip-def-01"},
	})
	if !errors.Is(err, team.ErrPlayerNotOnTeam) {
		t.Fatalf("expected player-not-on-team, got %v", err)
	}

	// Re-buying a rostered player trips the duplicate check.
	_, err = service.Execute(t.Context(), "user-1", "team-transfer", TransferRequest{
		PlayersIn:  []string{"gal-gk-01"},
		PlayersOut: []string{"cor-fwd-01"},
	})
	if !errors.Is(err, team.ErrDuplicatePlayerOnRoster) {
		t.Fatalf("expected duplicate roster entry, got %v", err)
	}

	_, err = service.Execute(t.Context(), "user-1", "team-transfer", TransferRequest{
		PlayersIn:  []string{"cla-mid-01", "cla-fwd-01"},
		PlayersOut: []string{"cor-fwd-01", "lim-fwd-01"},
	})
	if err != nil {
		t.Fatalf("two clare players should fit under the cap: %v", err)
	}
}

func TestTransferService_Execute_RejectsRepeatedOutgoingPlayer(t *testing.T) {
	service, teamRepo := newTransferService(transferTeam())

	// Selling cor-fwd-01 twice against two distinct buys balances the count
	// check but would credit the 9-unit sale price twice and grow the roster.
	_, err := service.Execute(t.Context(), "user-1", "team-transfer", TransferRequest{
		PlayersIn:  []string{"tip-fwd-01", "cla-mid-01"},
		PlayersOut: []string{"cor-fwd-01", "cor-fwd-01"},
	})
	if !errors.Is(err, team.ErrDuplicatePlayerOnRoster) {
		t.Fatalf("expected duplicate rejection for repeated outgoing id, got %v", err)
	}

	stored, _, err := teamRepo.GetByID(t.Context(), "team-transfer")
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if stored.Budget != 10 || len(stored.Roster) != 5 || stored.Version != 1 {
		t.Fatalf("expected team untouched, got budget=%d roster=%d version=%d",
			stored.Budget, len(stored.Roster), stored.Version)
	}
}

func TestTransferService_Execute_CountyCapNamesCounty(t *testing.T) {
	tm := transferTeam()
	tm.Roster = append(tm.Roster, team.RosterSlot{PlayerID: "cor-gk-01", Position: "GK", County: memory.CountyCork, Price: 4})
	tm.Roster = append(tm.Roster, team.RosterSlot{PlayerID: "cor-mid-01", Position: "MID", County: memory.CountyCork, Price: 7})
	service, _ := newTransferService(tm)

	// Roster already carries three Cork players; a fourth breaches the cap.
	_, err := service.Execute(t.Context(), "user-1", "team-transfer", TransferRequest{
		PlayersIn:  []string{"cor-def-01"},
		PlayersOut: []string{"gal-fwd-01"},
	})
	if !errors.Is(err, team.ErrCountyCapExceeded) {
		t.Fatalf("expected county cap exceeded, got %v", err)
	}
	if !strings.Contains(err.Error(), "county=Cork") {
		t.Fatalf("expected error to name the county, got %q", err.Error())
	}
}

func TestTransferService_Execute_InsufficientBudget(t *testing.T) {
	tm := transferTeam()
	tm.Budget = 0
	service, _ := newTransferService(tm)

	// Selling a 6-unit defender for a 9-unit midfielder needs 3 units.
	_, err := service.Execute(t.Context(), "user-1", "team-transfer", TransferRequest{
		PlayersIn:  []string{"cla-mid-01"},
		PlayersOut: []string{"gal-def-01"},
	})
	if !errors.Is(err, team.ErrInsufficientBudget) {
		t.Fatalf("expected insufficient budget, got %v", err)
	}
}

func TestTransferService_Execute_WrongOwner(t *testing.T) {
	service, _ := newTransferService(transferTeam())

	_, err := service.Execute(t.Context(), "user-2", "team-transfer", TransferRequest{
		PlayersIn:  []string{"tip-fwd-01"},
		PlayersOut: []string{"cor-fwd-01"},
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestTransferService_Execute_UnknownIncomingPlayer(t *testing.T) {
	service, _ := newTransferService(transferTeam())

	_, err := service.Execute(t.Context(), "user-1", "team-transfer", TransferRequest{
		PlayersIn:  []string{"ghost-player"},
		PlayersOut: []string{"cor-fwd-01"},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown incoming player, got %v", err)
	}
}
