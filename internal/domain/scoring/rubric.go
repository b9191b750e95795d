package scoring

import "github.com/oconaill/fantasy-gaa/internal/domain/match"

// Rubric stores the fixed fantasy scoring coefficients.
type Rubric struct {
	GoalPoints        int
	PointScoredPoints int
	SavePoints        int
	PenaltySavePoints int
	HookPoints        int
	BlockPoints       int
	YellowCardPoints  int
	RedCardPoints     int
	// Minutes bonus is flat and mutually exclusive on the threshold:
	// minutes >= FullGameMinutes earns FullGameBonus, anything below
	// earns PartGameBonus.
	FullGameMinutes int
	FullGameBonus   int
	PartGameBonus   int
}

func DefaultRubric() Rubric {
	return Rubric{
		GoalPoints:        3,
		PointScoredPoints: 1,
		SavePoints:        1,
		PenaltySavePoints: 3,
		HookPoints:        1,
		BlockPoints:       1,
		YellowCardPoints:  -1,
		RedCardPoints:     -2,
		FullGameMinutes:   50,
		FullGameBonus:     2,
		PartGameBonus:     1,
	}
}

// Score computes a performance's fantasy total. Pure and deterministic;
// negative totals are allowed.
func (r Rubric) Score(perf match.PlayerPerformance) int {
	total := perf.Goals*r.GoalPoints +
		perf.Points*r.PointScoredPoints +
		perf.Saves*r.SavePoints +
		perf.PenaltySaves*r.PenaltySavePoints +
		perf.Hooks*r.HookPoints +
		perf.Blocks*r.BlockPoints +
		perf.YellowCards*r.YellowCardPoints +
		perf.RedCards*r.RedCardPoints

	if perf.MinutesPlayed >= r.FullGameMinutes {
		total += r.FullGameBonus
	} else {
		total += r.PartGameBonus
	}

	return total
}
