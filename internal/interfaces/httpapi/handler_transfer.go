package httpapi

import (
	"fmt"
	"net/http"

	"github.com/oconaill/fantasy-gaa/internal/usecase"
)

type transferRequest struct {
	PlayersIn  []string `json:"players_in" validate:"required,min=1,unique,dive,required"`
	PlayersOut []string `json:"players_out" validate:"required,min=1,unique,dive,required"`
}

func (h *Handler) ValidateTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateTransfer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := r.PathValue("teamID")
	var req transferRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.transferService.Validate(ctx, principal.UserID, teamID, usecase.TransferRequest{
		PlayersIn:  req.PlayersIn,
		PlayersOut: req.PlayersOut,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "transfer validation rejected", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *Handler) ExecuteTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExecuteTransfer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := r.PathValue("teamID")
	var req transferRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	open, err := h.gameweekService.TransfersOpen(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "transfer window lookup failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if !open {
		writeError(ctx, w, fmt.Errorf("%w: transfer window is closed for the active gameweek", usecase.ErrInvalidInput))
		return
	}

	result, err := h.transferService.Execute(ctx, principal.UserID, teamID, usecase.TransferRequest{
		PlayersIn:  req.PlayersIn,
		PlayersOut: req.PlayersOut,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "transfer failed", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferResultDTO{
		Team:      teamToDTO(result.Team),
		SoldFor:   result.SoldFor,
		BoughtFor: result.BoughtFor,
	})
}
