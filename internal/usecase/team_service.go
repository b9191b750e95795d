package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/domain/player"
	"github.com/oconaill/fantasy-gaa/internal/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/platform/id"
)

// TeamService creates and serves fantasy teams.
type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	rules      team.Rules
	idGen      id.Generator
	now        func() time.Time
}

// CreateTeamInput is the manager's picked squad. Slot order is preserved on
// the stored roster.
type CreateTeamInput struct {
	OwnerUserID string
	Name        string
	Slots       []CreateTeamSlot
}

type CreateTeamSlot struct {
	PlayerID      string
	IsCaptain     bool
	IsViceCaptain bool
	IsSub         bool
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository, rules team.Rules, idGen id.Generator) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rules:      rules,
		idGen:      idGen,
		now:        time.Now,
	}
}

// CreateTeam resolves the picked players into priced roster slots, validates
// the squad against the roster rules, and stores the team with its remaining
// budget.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.OwnerUserID == "" {
		return team.Team{}, fmt.Errorf("%w: owner user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len(input.Slots) == 0 {
		return team.Team{}, fmt.Errorf("%w: roster slots are required", ErrInvalidInput)
	}

	playerIDs := make([]string, 0, len(input.Slots))
	for _, slot := range input.Slots {
		playerIDs = append(playerIDs, slot.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return team.Team{}, fmt.Errorf("load picked players: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	var spent int64
	roster := make([]team.RosterSlot, 0, len(input.Slots))
	for _, slot := range input.Slots {
		p, ok := byID[slot.PlayerID]
		if !ok {
			return team.Team{}, fmt.Errorf("%w: player %s", ErrNotFound, slot.PlayerID)
		}
		spent += p.Price
		roster = append(roster, team.RosterSlot{
			PlayerID:      p.ID,
			Position:      string(p.Position),
			County:        p.County,
			Price:         p.Price,
			IsCaptain:     slot.IsCaptain,
			IsViceCaptain: slot.IsViceCaptain,
			IsSub:         slot.IsSub,
		})
	}

	if err := team.ValidateRoster(roster, s.rules); err != nil {
		return team.Team{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	t := team.Team{
		ID:          teamID,
		OwnerUserID: input.OwnerUserID,
		Name:        input.Name,
		Roster:      roster,
		Budget:      s.rules.BudgetCap - spent,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return t, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return t, nil
}

func (s *TeamService) ListMyTeams(ctx context.Context, ownerUserID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListMyTeams")
	defer span.End()

	if ownerUserID == "" {
		return nil, fmt.Errorf("%w: owner user id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("list teams by owner: %w", err)
	}
	return teams, nil
}
