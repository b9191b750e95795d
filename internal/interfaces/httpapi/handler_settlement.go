package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/oconaill/fantasy-gaa/internal/usecase"
)

type createMatchRequest struct {
	GameweekNumber int      `json:"gameweek_number" validate:"required,gt=0"`
	HomeTeam       string   `json:"home_team" validate:"required"`
	AwayTeam       string   `json:"away_team" validate:"required"`
	PlayerIDs      []string `json:"player_ids" validate:"required,min=1,dive,required"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		GameweekNumber: req.GameweekNumber,
		HomeTeam:       req.HomeTeam,
		AwayTeam:       req.AwayTeam,
		PlayerIDs:      req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "gameweek", req.GameweekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

type updateScoreRequest struct {
	HomeScore string `json:"home_score" validate:"required"`
	AwayScore string `json:"away_score" validate:"required"`
}

func (h *Handler) UpdateMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchScore")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req updateScoreRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.matchService.UpdateScore(ctx, matchID, req.HomeScore, req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "update match score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

type performanceRequest struct {
	Goals         int `json:"goals" validate:"gte=0"`
	Points        int `json:"points" validate:"gte=0"`
	YellowCards   int `json:"yellow_cards" validate:"gte=0"`
	RedCards      int `json:"red_cards" validate:"gte=0"`
	MinutesPlayed int `json:"minutes_played" validate:"gte=0,lte=120"`
	Saves         int `json:"saves" validate:"gte=0"`
	PenaltySaves  int `json:"penalty_saves" validate:"gte=0"`
	Hooks         int `json:"hooks" validate:"gte=0"`
	Blocks        int `json:"blocks" validate:"gte=0"`
}

// ApplyPerformance settles one stat line. A partial propagation still
// answers 200 with the failed team IDs listed; the player-side write has
// already committed and the outbox will chase the stragglers.
func (h *Handler) ApplyPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyPerformance")
	defer span.End()

	matchID := r.PathValue("matchID")
	playerID := r.PathValue("playerID")

	var req performanceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.settlementService.ApplyPerformanceUpdate(ctx, matchID, playerID, usecase.PerformanceInput{
		Goals:         req.Goals,
		Points:        req.Points,
		YellowCards:   req.YellowCards,
		RedCards:      req.RedCards,
		MinutesPlayed: req.MinutesPlayed,
		Saves:         req.Saves,
		PenaltySaves:  req.PenaltySaves,
		Hooks:         req.Hooks,
		Blocks:        req.Blocks,
	})
	if err != nil {
		var propagation *usecase.PartialPropagationError
		if errors.As(err, &propagation) {
			h.logger.WarnContext(ctx, "settlement propagated partially",
				"match_id", matchID,
				"player_id", playerID,
				"failed_teams", propagation.FailedTeamIDs,
			)
			writeSuccess(ctx, w, http.StatusOK, settlementToDTO(result))
			return
		}
		h.logger.WarnContext(ctx, "apply performance failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementToDTO(result))
}

type upsertGameweekRequest struct {
	Number           int       `json:"number" validate:"required,gt=0"`
	TransferDeadline time.Time `json:"transfer_deadline" validate:"required"`
	IsActive         bool      `json:"is_active"`
}

func (h *Handler) UpsertGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertGameweek")
	defer span.End()

	var req upsertGameweekRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gw, err := h.gameweekService.UpsertGameweek(ctx, usecase.UpsertGameweekInput{
		Number:           req.Number,
		TransferDeadline: req.TransferDeadline,
		IsActive:         req.IsActive,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert gameweek failed", "number", req.Number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(gw))
}
