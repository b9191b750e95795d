package memory

import (
	"time"

	"github.com/oconaill/fantasy-gaa/internal/domain/gameweek"
	"github.com/oconaill/fantasy-gaa/internal/domain/match"
	"github.com/oconaill/fantasy-gaa/internal/domain/player"
)

const (
	CountyGalway    = "Galway"
	CountyCork      = "Cork"
	CountyKilkenny  = "Kilkenny"
	CountyLimerick  = "Limerick"
	CountyTipperary = "Tipperary"
	CountyClare     = "Clare"
)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "gal-gk-01", Name: "Eanna Murphy", Club: "Tommy Larkins", County: CountyGalway, Position: player.PositionGoalkeeper, Price: 5, Status: player.StatusAvailable},
		{ID: "gal-def-01", Name: "Daithi Burke", Club: "Turloughmore", County: CountyGalway, Position: player.PositionDefender, Price: 6, Status: player.StatusAvailable},
		{ID: "gal-fwd-01", Name: "Conor Whelan", Club: "Kinvara", County: CountyGalway, Position: player.PositionForward, Price: 8, Status: player.StatusAvailable},
		{ID: "cor-gk-01", Name: "Patrick Collins", Club: "Ballinhassig", County: CountyCork, Position: player.PositionGoalkeeper, Price: 4, Status: player.StatusAvailable},
		{ID: "cor-def-01", Name: "Sean O'Donoghue", Club: "Inniscarra", County: CountyCork, Position: player.PositionDefender, Price: 5, Status: player.StatusAvailable},
		{ID: "cor-mid-01", Name: "Darragh Fitzgibbon", Club: "Charleville", County: CountyCork, Position: player.PositionMidfielder, Price: 7, Status: player.StatusAvailable},
		{ID: "cor-fwd-01", Name: "Patrick Horgan", Club: "Glen Rovers", County: CountyCork, Position: player.PositionForward, Price: 9, Status: player.StatusAvailable},
		{ID: "kil-def-01", Name: "Huw Lawlor", Club: "O'Loughlin Gaels", County: CountyKilkenny, Position: player.PositionDefender, Price: 6, Status: player.StatusAvailable},
		{ID: "kil-mid-01", Name: "Adrian Mullen", Club: "Ballyhale Shamrocks", County: CountyKilkenny, Position: player.PositionMidfielder, Price: 7, Status: player.StatusAvailable},
		{ID: "kil-fwd-01", Name: "Eoin Cody", Club: "Ballyhale Shamrocks", County: CountyKilkenny, Position: player.PositionForward, Price: 8, Status: player.StatusAvailable},
		{ID: "lim-def-01", Name: "Dan Morrissey", Club: "Ahane", County: CountyLimerick, Position: player.PositionDefender, Price: 6, Status: player.StatusAvailable},
		{ID: "lim-mid-01", Name: "William O'Donoghue", Club: "Na Piarsaigh", County: CountyLimerick, Position: player.PositionMidfielder, Price: 6, Status: player.StatusAvailable},
		{ID: "lim-fwd-01", Name: "Aaron Gillane", Club: "Patrickswell", County: CountyLimerick, Position: player.PositionForward, Price: 9, Status: player.StatusAvailable},
		{ID: "tip-def-01", Name: "Ronan Maher", Club: "Thurles Sarsfields", County: CountyTipperary, Position: player.PositionDefender, Price: 6, Status: player.StatusAvailable},
		{ID: "tip-fwd-01", Name: "Jason Forde", Club: "Silvermines", County: CountyTipperary, Position: player.PositionForward, Price: 7, Status: player.StatusAvailable},
		{ID: "cla-mid-01", Name: "Tony Kelly", Club: "Ballyea", County: CountyClare, Position: player.PositionMidfielder, Price: 9, Status: player.StatusAvailable},
		{ID: "cla-fwd-01", Name: "Shane O'Donnell", Club: "Eire Og Ennis", County: CountyClare, Position: player.PositionForward, Price: 8, Status: player.StatusAvailable},
	}
}

func SeedGameweeks() []gameweek.Gameweek {
	return []gameweek.Gameweek{
		{
			Number:           1,
			MatchIDs:         []string{"mt-gw1-gal-cor", "mt-gw1-kil-lim"},
			TransferDeadline: time.Date(2026, 5, 23, 12, 0, 0, 0, time.UTC),
			IsActive:         true,
		},
		{
			Number:           2,
			TransferDeadline: time.Date(2026, 5, 30, 12, 0, 0, 0, time.UTC),
		},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:             "mt-gw1-gal-cor",
			GameweekNumber: 1,
			HomeTeam:       CountyGalway,
			AwayTeam:       CountyCork,
			Performances: []match.PlayerPerformance{
				{PlayerID: "gal-gk-01"},
				{PlayerID: "gal-def-01"},
				{PlayerID: "gal-fwd-01"},
				{PlayerID: "cor-gk-01"},
				{PlayerID: "cor-mid-01"},
				{PlayerID: "cor-fwd-01"},
			},
		},
		{
			ID:             "mt-gw1-kil-lim",
			GameweekNumber: 1,
			HomeTeam:       CountyKilkenny,
			AwayTeam:       CountyLimerick,
			Performances: []match.PlayerPerformance{
				{PlayerID: "kil-def-01"},
				{PlayerID: "kil-mid-01"},
				{PlayerID: "kil-fwd-01"},
				{PlayerID: "lim-def-01"},
				{PlayerID: "lim-mid-01"},
				{PlayerID: "lim-fwd-01"},
			},
		},
	}
}
