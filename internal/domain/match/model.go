package match

import "fmt"

// PlayerPerformance is one player's statistics line within a match.
// TotalPoints is a cached rubric score; it is recomputed from the stat fields
// on every settlement and never taken from caller input.
type PlayerPerformance struct {
	PlayerID      string
	Goals         int
	Points        int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
	Saves         int
	PenaltySaves  int
	Hooks         int
	Blocks        int
	TotalPoints   int
}

// Match represents one fixture between two county sides.
// Score strings are free-form GAA notation, e.g. "1-20".
type Match struct {
	ID             string
	GameweekNumber int
	HomeTeam       string
	AwayTeam       string
	HomeScore      string
	AwayScore      string
	Performances   []PlayerPerformance
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.GameweekNumber <= 0 {
		return fmt.Errorf("match gameweek number must be greater than zero")
	}
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("match home and away teams are required")
	}

	seen := make(map[string]struct{}, len(m.Performances))
	for _, perf := range m.Performances {
		if perf.PlayerID == "" {
			return fmt.Errorf("performance player id is required")
		}
		if _, ok := seen[perf.PlayerID]; ok {
			return fmt.Errorf("duplicate performance for player %s", perf.PlayerID)
		}
		seen[perf.PlayerID] = struct{}{}
	}

	return nil
}

// PerformanceFor returns the performance line for one participating player.
func (m Match) PerformanceFor(playerID string) (PlayerPerformance, bool) {
	for _, perf := range m.Performances {
		if perf.PlayerID == playerID {
			return perf, true
		}
	}
	return PlayerPerformance{}, false
}
