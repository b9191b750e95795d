package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/oconaill/fantasy-gaa/internal/domain/gameweek"
	"github.com/oconaill/fantasy-gaa/internal/domain/match"
	"github.com/oconaill/fantasy-gaa/internal/domain/player"
	"github.com/oconaill/fantasy-gaa/internal/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/usecase"
)

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeBody(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parsePathInt(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

type playerDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Club        string `json:"club"`
	County      string `json:"county"`
	Position    string `json:"position"`
	Price       int64  `json:"price"`
	Status      string `json:"status"`
	TotalPoints int    `json:"total_points"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		Name:        p.Name,
		Club:        p.Club,
		County:      p.County,
		Position:    string(p.Position),
		Price:       p.Price,
		Status:      string(p.Status),
		TotalPoints: p.TotalPoints,
	}
}

type gameweekDTO struct {
	Number           int       `json:"number"`
	MatchIDs         []string  `json:"match_ids"`
	TransferDeadline time.Time `json:"transfer_deadline"`
	IsActive         bool      `json:"is_active"`
}

func gameweekToDTO(gw gameweek.Gameweek) gameweekDTO {
	matchIDs := gw.MatchIDs
	if matchIDs == nil {
		matchIDs = []string{}
	}
	return gameweekDTO{
		Number:           gw.Number,
		MatchIDs:         matchIDs,
		TransferDeadline: gw.TransferDeadline,
		IsActive:         gw.IsActive,
	}
}

type performanceDTO struct {
	PlayerID      string `json:"player_id"`
	Goals         int    `json:"goals"`
	Points        int    `json:"points"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	MinutesPlayed int    `json:"minutes_played"`
	Saves         int    `json:"saves"`
	PenaltySaves  int    `json:"penalty_saves"`
	Hooks         int    `json:"hooks"`
	Blocks        int    `json:"blocks"`
	TotalPoints   int    `json:"total_points"`
}

func performanceToDTO(perf match.PlayerPerformance) performanceDTO {
	return performanceDTO{
		PlayerID:      perf.PlayerID,
		Goals:         perf.Goals,
		Points:        perf.Points,
		YellowCards:   perf.YellowCards,
		RedCards:      perf.RedCards,
		MinutesPlayed: perf.MinutesPlayed,
		Saves:         perf.Saves,
		PenaltySaves:  perf.PenaltySaves,
		Hooks:         perf.Hooks,
		Blocks:        perf.Blocks,
		TotalPoints:   perf.TotalPoints,
	}
}

type matchDTO struct {
	ID             string           `json:"id"`
	GameweekNumber int              `json:"gameweek_number"`
	HomeTeam       string           `json:"home_team"`
	AwayTeam       string           `json:"away_team"`
	HomeScore      string           `json:"home_score,omitempty"`
	AwayScore      string           `json:"away_score,omitempty"`
	Performances   []performanceDTO `json:"performances"`
}

func matchToDTO(m match.Match) matchDTO {
	performances := make([]performanceDTO, 0, len(m.Performances))
	for _, perf := range m.Performances {
		performances = append(performances, performanceToDTO(perf))
	}
	return matchDTO{
		ID:             m.ID,
		GameweekNumber: m.GameweekNumber,
		HomeTeam:       m.HomeTeam,
		AwayTeam:       m.AwayTeam,
		HomeScore:      m.HomeScore,
		AwayScore:      m.AwayScore,
		Performances:   performances,
	}
}

type rosterSlotDTO struct {
	PlayerID      string `json:"player_id"`
	Position      string `json:"position"`
	County        string `json:"county"`
	Price         int64  `json:"price"`
	IsCaptain     bool   `json:"is_captain"`
	IsViceCaptain bool   `json:"is_vice_captain"`
	IsSub         bool   `json:"is_sub"`
}

type gameweekScoreDTO struct {
	Gameweek int `json:"gameweek"`
	Points   int `json:"points"`
}

type teamDTO struct {
	ID             string             `json:"id"`
	OwnerUserID    string             `json:"owner_user_id"`
	Name           string             `json:"name"`
	Roster         []rosterSlotDTO    `json:"roster"`
	Budget         int64              `json:"budget"`
	TotalPoints    int                `json:"total_points"`
	GameweekPoints []gameweekScoreDTO `json:"gameweek_points"`
	Version        int64              `json:"version"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func teamToDTO(t team.Team) teamDTO {
	roster := make([]rosterSlotDTO, 0, len(t.Roster))
	for _, slot := range t.Roster {
		roster = append(roster, rosterSlotDTO{
			PlayerID:      slot.PlayerID,
			Position:      slot.Position,
			County:        slot.County,
			Price:         slot.Price,
			IsCaptain:     slot.IsCaptain,
			IsViceCaptain: slot.IsViceCaptain,
			IsSub:         slot.IsSub,
		})
	}
	scores := make([]gameweekScoreDTO, 0, len(t.GameweekPoints))
	for _, score := range t.GameweekPoints {
		scores = append(scores, gameweekScoreDTO{Gameweek: score.Gameweek, Points: score.Points})
	}
	return teamDTO{
		ID:             t.ID,
		OwnerUserID:    t.OwnerUserID,
		Name:           t.Name,
		Roster:         roster,
		Budget:         t.Budget,
		TotalPoints:    t.TotalPoints,
		GameweekPoints: scores,
		Version:        t.Version,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

type settlementResultDTO struct {
	Performance     performanceDTO `json:"performance"`
	PlayerTotal     int            `json:"player_total"`
	Delta           int            `json:"delta"`
	TeamsUpdated    int            `json:"teams_updated"`
	FailedTeamIDs   []string       `json:"failed_team_ids,omitempty"`
	PartialDelivery bool           `json:"partial_delivery"`
}

func settlementToDTO(result usecase.SettlementResult) settlementResultDTO {
	dto := settlementResultDTO{
		Performance:  performanceToDTO(result.Performance),
		PlayerTotal:  result.PlayerTotal,
		Delta:        result.Delta,
		TeamsUpdated: result.TeamsUpdated,
	}
	if result.PropagationError != nil {
		dto.PartialDelivery = true
		dto.FailedTeamIDs = result.PropagationError.FailedTeamIDs
	}
	return dto
}

type transferResultDTO struct {
	Team      teamDTO `json:"team"`
	SoldFor   int64   `json:"sold_for"`
	BoughtFor int64   `json:"bought_for"`
}
