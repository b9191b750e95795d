package team

import (
	"errors"
	"strings"
	"testing"
)

func testTeam() Team {
	return Team{
		ID:          "team-1",
		OwnerUserID: "user-1",
		Name:        "Na Fianna Select",
		Budget:      5,
		Roster: []RosterSlot{
			{PlayerID: "gal-1", County: "Galway", Price: 10, IsCaptain: true},
			{PlayerID: "gal-2", County: "Galway", Price: 9},
			{PlayerID: "cor-1", County: "Cork", Price: 8, IsViceCaptain: true},
			{PlayerID: "kil-1", County: "Kilkenny", Price: 8},
			{PlayerID: "lim-1", County: "Limerick", Price: 7, IsSub: true},
		},
		Version: 1,
	}
}

func TestValidateTransfer_CountMismatch(t *testing.T) {
	err := ValidateTransfer(testTeam(), []RosterSlot{{PlayerID: "x", County: "Clare", Price: 1}}, nil, DefaultRules())
	if !errors.Is(err, ErrTransferCountMismatch) {
		t.Fatalf("expected ErrTransferCountMismatch, got %v", err)
	}
}

func TestValidateTransfer_PlayerNotOnTeam(t *testing.T) {
	err := ValidateTransfer(
		testTeam(),
		[]RosterSlot{{PlayerID: "cla-1", County: "Clare", Price: 5}},
		[]string{"unknown-player"},
		DefaultRules(),
	)
	if !errors.Is(err, ErrPlayerNotOnTeam) {
		t.Fatalf("expected ErrPlayerNotOnTeam, got %v", err)
	}
}

func TestValidateTransfer_CountyCapNamesCounty(t *testing.T) {
	// Two Galway players stay on the roster; bringing in a third while a
	// non-Galway player leaves pushes Galway to the cap boundary, a fourth
	// breaches it.
	tm := testTeam()
	tm.Roster = append(tm.Roster, RosterSlot{PlayerID: "gal-3", County: "Galway", Price: 6})

	err := ValidateTransfer(
		tm,
		[]RosterSlot{{PlayerID: "gal-4", County: "Galway", Price: 5}},
		[]string{"cor-1"},
		DefaultRules(),
	)
	if !errors.Is(err, ErrCountyCapExceeded) {
		t.Fatalf("expected ErrCountyCapExceeded, got %v", err)
	}
	if !strings.Contains(err.Error(), "Galway") {
		t.Fatalf("county cap error must name the county: %v", err)
	}
}

func TestValidateTransfer_InsufficientBudget(t *testing.T) {
	err := ValidateTransfer(
		testTeam(),
		[]RosterSlot{{PlayerID: "cla-1", County: "Clare", Price: 20}},
		[]string{"lim-1"}, // price 7, budget 5 -> available 12 < 20
		DefaultRules(),
	)
	if !errors.Is(err, ErrInsufficientBudget) {
		t.Fatalf("expected ErrInsufficientBudget, got %v", err)
	}
}

func TestValidateTransfer_BudgetExactlySufficient(t *testing.T) {
	err := ValidateTransfer(
		testTeam(),
		[]RosterSlot{{PlayerID: "cla-1", County: "Clare", Price: 12}},
		[]string{"lim-1"}, // out price 7 + budget 5 == 12
		DefaultRules(),
	)
	if err != nil {
		t.Fatalf("expected transfer to pass at exact budget: %v", err)
	}
}

func TestValidateTransfer_DuplicateIncomingPlayer(t *testing.T) {
	err := ValidateTransfer(
		testTeam(),
		[]RosterSlot{{PlayerID: "gal-2", County: "Galway", Price: 5}},
		[]string{"lim-1"},
		DefaultRules(),
	)
	if !errors.Is(err, ErrDuplicatePlayerOnRoster) {
		t.Fatalf("expected ErrDuplicatePlayerOnRoster, got %v", err)
	}
}

func TestValidateTransfer_RepeatedOutgoingPlayer(t *testing.T) {
	// lim-1 listed twice: the count check balances against two distinct
	// incoming players, but only one slot would leave the roster and its
	// sale price would be credited twice.
	err := ValidateTransfer(
		testTeam(),
		[]RosterSlot{
			{PlayerID: "cla-1", County: "Clare", Price: 1},
			{PlayerID: "cla-2", County: "Clare", Price: 1},
		},
		[]string{"lim-1", "lim-1"},
		DefaultRules(),
	)
	if !errors.Is(err, ErrDuplicatePlayerOnRoster) {
		t.Fatalf("expected ErrDuplicatePlayerOnRoster for repeated outgoing id, got %v", err)
	}
}

func TestValidateTransfer_RepeatedIncomingPlayer(t *testing.T) {
	err := ValidateTransfer(
		testTeam(),
		[]RosterSlot{
			{PlayerID: "cla-1", County: "Clare", Price: 1},
			{PlayerID: "cla-1", County: "Clare", Price: 1},
		},
		[]string{"lim-1", "kil-1"},
		DefaultRules(),
	)
	if !errors.Is(err, ErrDuplicatePlayerOnRoster) {
		t.Fatalf("expected ErrDuplicatePlayerOnRoster for repeated incoming id, got %v", err)
	}
}

func TestValidateTransfer_ChecksOrderIsDeterministic(t *testing.T) {
	// A request failing both the existence and the budget check must report
	// the existence failure: players-out existence runs before budget.
	err := ValidateTransfer(
		testTeam(),
		[]RosterSlot{{PlayerID: "cla-1", County: "Clare", Price: 500}},
		[]string{"not-rostered"},
		DefaultRules(),
	)
	if !errors.Is(err, ErrPlayerNotOnTeam) {
		t.Fatalf("expected ErrPlayerNotOnTeam to win over budget failure, got %v", err)
	}
}

func TestValidateRoster_CaptaincyRequired(t *testing.T) {
	rules := Rules{RosterSize: 2, BudgetCap: 100, MaxPlayersPerCounty: 3}
	slots := []RosterSlot{
		{PlayerID: "a", County: "Galway", Price: 10},
		{PlayerID: "b", County: "Cork", Price: 10},
	}
	if err := ValidateRoster(slots, rules); !errors.Is(err, ErrInvalidCaptaincy) {
		t.Fatalf("expected ErrInvalidCaptaincy, got %v", err)
	}

	slots[0].IsCaptain = true
	slots[1].IsViceCaptain = true
	if err := ValidateRoster(slots, rules); err != nil {
		t.Fatalf("expected valid roster, got %v", err)
	}
}

func TestValidateRoster_BudgetCap(t *testing.T) {
	rules := Rules{RosterSize: 2, BudgetCap: 15, MaxPlayersPerCounty: 3}
	slots := []RosterSlot{
		{PlayerID: "a", County: "Galway", Price: 10, IsCaptain: true},
		{PlayerID: "b", County: "Cork", Price: 10, IsViceCaptain: true},
	}
	if err := ValidateRoster(slots, rules); !errors.Is(err, ErrInsufficientBudget) {
		t.Fatalf("expected ErrInsufficientBudget, got %v", err)
	}
}
