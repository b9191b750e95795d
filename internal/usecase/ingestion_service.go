package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oconaill/fantasy-gaa/internal/domain/gameweek"
	"github.com/oconaill/fantasy-gaa/internal/domain/match"
	"github.com/oconaill/fantasy-gaa/internal/domain/player"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
)

// statsFeedClient is the slice of the county board feed the ingestion flow
// needs.
type statsFeedClient interface {
	FetchMatchStats(ctx context.Context, matchRef string) (ExternalMatchStats, error)
	FetchRoundMatchRefs(ctx context.Context, round int) ([]string, error)
}

// IngestionService pulls official statistics from the feed and settles them
// through the same path manual updates take. Feed match references double as
// match IDs so repeated syncs land on the same fixture.
type IngestionService struct {
	feed         statsFeedClient
	matchRepo    match.Repository
	gameweekRepo gameweek.Repository
	playerRepo   player.Repository
	settlement   *SettlementService
	logger       *logging.Logger
}

// IngestionReport summarizes one sync: lines settled, lines skipped for
// unknown players, and lines that failed to settle.
type IngestionReport struct {
	MatchesSynced  int
	LinesApplied   int
	LinesSkipped   int
	LinesFailed    int
	PartialPayouts int
}

func NewIngestionService(
	feed statsFeedClient,
	matchRepo match.Repository,
	gameweekRepo gameweek.Repository,
	playerRepo player.Repository,
	settlement *SettlementService,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		feed:         feed,
		matchRepo:    matchRepo,
		gameweekRepo: gameweekRepo,
		playerRepo:   playerRepo,
		settlement:   settlement,
		logger:       logger,
	}
}

// SyncMatchStats fetches one match from the feed, creates the fixture on
// first sight, and settles every known player's line. Lines naming players
// missing from the catalog are skipped, not fatal.
func (s *IngestionService) SyncMatchStats(ctx context.Context, matchRef string) (IngestionReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncMatchStats")
	defer span.End()

	matchRef = strings.TrimSpace(matchRef)
	if matchRef == "" {
		return IngestionReport{}, fmt.Errorf("%w: match ref is required", ErrInvalidInput)
	}

	stats, err := s.feed.FetchMatchStats(ctx, matchRef)
	if err != nil {
		if errors.Is(err, ErrDependencyUnavailable) {
			return IngestionReport{}, err
		}
		return IngestionReport{}, fmt.Errorf("%w: fetch match stats: %v", ErrDependencyUnavailable, err)
	}
	if stats.GameweekNumber <= 0 {
		return IngestionReport{}, fmt.Errorf("%w: feed match %s has no round", ErrInvalidInput, matchRef)
	}

	if err := s.ensureGameweek(ctx, stats.GameweekNumber); err != nil {
		return IngestionReport{}, err
	}
	m, err := s.ensureMatch(ctx, matchRef, stats)
	if err != nil {
		return IngestionReport{}, err
	}

	if stats.HomeScore != "" || stats.AwayScore != "" {
		if _, err := s.matchRepo.UpdateScore(ctx, m.ID, stats.HomeScore, stats.AwayScore); err != nil {
			return IngestionReport{}, fmt.Errorf("record match score: %w", err)
		}
	}

	report := IngestionReport{MatchesSynced: 1}
	for _, line := range stats.Lines {
		_, found, err := s.playerRepo.GetByID(ctx, line.PlayerRef)
		if err != nil {
			return report, fmt.Errorf("look up player %s: %w", line.PlayerRef, err)
		}
		if !found {
			s.logger.WarnContext(ctx, "ingestion: skipping line for unknown player",
				"matchRef", matchRef,
				"playerRef", line.PlayerRef,
				"playerName", line.PlayerName,
			)
			report.LinesSkipped++
			continue
		}

		if _, ok := m.PerformanceFor(line.PlayerRef); !ok {
			m, err = s.matchRepo.SavePerformance(ctx, m.ID, match.PlayerPerformance{PlayerID: line.PlayerRef})
			if err != nil {
				return report, fmt.Errorf("register performance line: %w", err)
			}
		}

		_, err = s.settlement.ApplyPerformanceUpdate(ctx, m.ID, line.PlayerRef, PerformanceInput{
			Goals:         line.Goals,
			Points:        line.Points,
			YellowCards:   line.YellowCards,
			RedCards:      line.RedCards,
			MinutesPlayed: line.MinutesPlayed,
			Saves:         line.Saves,
			PenaltySaves:  line.PenaltySaves,
			Hooks:         line.Hooks,
			Blocks:        line.Blocks,
		})
		if err != nil {
			var partial *PartialPropagationError
			if errors.As(err, &partial) {
				report.LinesApplied++
				report.PartialPayouts++
				continue
			}
			s.logger.ErrorContext(ctx, "ingestion: settling line failed",
				"matchRef", matchRef,
				"playerRef", line.PlayerRef,
				"error", err.Error(),
			)
			report.LinesFailed++
			continue
		}
		report.LinesApplied++
	}

	return report, nil
}

// SyncRound syncs every match the feed lists for a championship round.
func (s *IngestionService) SyncRound(ctx context.Context, round int) (IngestionReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncRound")
	defer span.End()

	if round <= 0 {
		return IngestionReport{}, fmt.Errorf("%w: round must be greater than zero", ErrInvalidInput)
	}

	refs, err := s.feed.FetchRoundMatchRefs(ctx, round)
	if err != nil {
		if errors.Is(err, ErrDependencyUnavailable) {
			return IngestionReport{}, err
		}
		return IngestionReport{}, fmt.Errorf("%w: fetch round matches: %v", ErrDependencyUnavailable, err)
	}

	var total IngestionReport
	for _, ref := range refs {
		report, err := s.SyncMatchStats(ctx, ref)
		if err != nil {
			s.logger.ErrorContext(ctx, "ingestion: match sync failed",
				"round", round,
				"matchRef", ref,
				"error", err.Error(),
			)
			continue
		}
		total.MatchesSynced += report.MatchesSynced
		total.LinesApplied += report.LinesApplied
		total.LinesSkipped += report.LinesSkipped
		total.LinesFailed += report.LinesFailed
		total.PartialPayouts += report.PartialPayouts
	}
	return total, nil
}

func (s *IngestionService) ensureGameweek(ctx context.Context, number int) error {
	_, found, err := s.gameweekRepo.GetByNumber(ctx, number)
	if err != nil {
		return fmt.Errorf("get gameweek for ingestion: %w", err)
	}
	if found {
		return nil
	}
	if err := s.gameweekRepo.Upsert(ctx, gameweek.Gameweek{Number: number}); err != nil {
		return fmt.Errorf("create gameweek for ingestion: %w", err)
	}
	return nil
}

func (s *IngestionService) ensureMatch(ctx context.Context, matchRef string, stats ExternalMatchStats) (match.Match, error) {
	m, found, err := s.matchRepo.GetByID(ctx, matchRef)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match for ingestion: %w", err)
	}
	if found {
		return m, nil
	}

	m = match.Match{
		ID:             matchRef,
		GameweekNumber: stats.GameweekNumber,
		HomeTeam:       stats.HomeTeam,
		AwayTeam:       stats.AwayTeam,
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: feed match %s: %v", ErrInvalidInput, matchRef, err)
	}
	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match for ingestion: %w", err)
	}
	if err := s.gameweekRepo.AttachMatch(ctx, stats.GameweekNumber, matchRef); err != nil {
		return match.Match{}, fmt.Errorf("attach ingested match: %w", err)
	}
	return m, nil
}
