package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListByGameweek(ctx context.Context, gameweekNumber int) ([]Match, error)
	Create(ctx context.Context, m Match) error
	UpdateScore(ctx context.Context, matchID, homeScore, awayScore string) (Match, error)
	// SavePerformance replaces the performance line matching perf.PlayerID
	// within the match, appending it when no line exists yet, and returns
	// the updated match.
	SavePerformance(ctx context.Context, matchID string, perf PlayerPerformance) (Match, error)
}
