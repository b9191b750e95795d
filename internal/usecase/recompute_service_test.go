package usecase

import (
	"testing"

	"github.com/oconaill/fantasy-gaa/internal/domain/match"
	"github.com/oconaill/fantasy-gaa/internal/domain/scoring"
	"github.com/oconaill/fantasy-gaa/internal/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/infrastructure/repository/memory"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
)

func TestRecomputeService_RecomputeSeason_RepairsDriftedTotals(t *testing.T) {
	rubric := scoring.DefaultRubric()

	perfA := match.PlayerPerformance{PlayerID: "gal-fwd-01", Goals: 2, Points: 3, MinutesPlayed: 70}
	perfA.TotalPoints = rubric.Score(perfA)
	perfB := match.PlayerPerformance{PlayerID: "cor-mid-01", Points: 4, MinutesPlayed: 44}
	perfB.TotalPoints = rubric.Score(perfB)

	matchRepo := memory.NewMatchRepository([]match.Match{
		{
			ID:             "mt-gw1-gal-cor",
			GameweekNumber: 1,
			HomeTeam:       memory.CountyGalway,
			AwayTeam:       memory.CountyCork,
			Performances:   []match.PlayerPerformance{perfA, perfB},
		},
	})

	// Cached totals deliberately disagree with the stat lines.
	players := memory.SeedPlayers()
	for i := range players {
		if players[i].ID == "gal-fwd-01" {
			players[i].TotalPoints = 99
		}
	}
	playerRepo := memory.NewPlayerRepository(players)

	teamRepo := memory.NewTeamRepository([]team.Team{
		{
			ID:          "team-drifted",
			OwnerUserID: "user-1",
			Name:        "Drifted",
			Roster: []team.RosterSlot{
				{PlayerID: "gal-fwd-01", Position: "FWD", County: memory.CountyGalway, Price: 8, IsCaptain: true},
				{PlayerID: "cor-mid-01", Position: "MID", County: memory.CountyCork, Price: 7, IsViceCaptain: true, IsSub: true},
			},
			TotalPoints:    42,
			GameweekPoints: []team.GameweekScore{{Gameweek: 1, Points: 42}},
			Version:        1,
		},
	})
	gameweekRepo := memory.NewGameweekRepository(memory.SeedGameweeks())

	service := NewRecomputeService(matchRepo, playerRepo, teamRepo, gameweekRepo, logging.NewNop())

	report, err := service.RecomputeSeason(t.Context())
	if err != nil {
		t.Fatalf("recompute season failed: %v", err)
	}
	if report.Failures != 0 {
		t.Fatalf("expected no failures, got %d", report.Failures)
	}
	if report.PlayersUpdated != 2 {
		t.Fatalf("expected 2 players updated, got %d", report.PlayersUpdated)
	}
	if report.TeamsUpdated != 1 {
		t.Fatalf("expected 1 team updated, got %d", report.TeamsUpdated)
	}

	wantA := rubric.Score(perfA)
	p, _, err := playerRepo.GetByID(t.Context(), "gal-fwd-01")
	if err != nil {
		t.Fatalf("get player failed: %v", err)
	}
	if p.TotalPoints != wantA {
		t.Fatalf("expected player total %d after repair, got %d", wantA, p.TotalPoints)
	}

	// Only the starting slot counts toward the team; the bench line does not.
	repaired, _, err := teamRepo.GetByID(t.Context(), "team-drifted")
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if repaired.PointsForGameweek(1) != wantA {
		t.Fatalf("expected team gw1 points %d, got %d", wantA, repaired.PointsForGameweek(1))
	}
	if repaired.TotalPoints != wantA {
		t.Fatalf("expected team season total %d, got %d", wantA, repaired.TotalPoints)
	}
}
