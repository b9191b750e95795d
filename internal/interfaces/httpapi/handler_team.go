package httpapi

import (
	"fmt"
	"net/http"

	"github.com/oconaill/fantasy-gaa/internal/usecase"
)

type createTeamSlotRequest struct {
	PlayerID      string `json:"player_id" validate:"required"`
	IsCaptain     bool   `json:"is_captain"`
	IsViceCaptain bool   `json:"is_vice_captain"`
	IsSub         bool   `json:"is_sub"`
}

type createTeamRequest struct {
	Name  string                  `json:"name" validate:"required,max=100"`
	Slots []createTeamSlotRequest `json:"slots" validate:"required,len=15,dive"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createTeamRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slots := make([]usecase.CreateTeamSlot, 0, len(req.Slots))
	for _, slot := range req.Slots {
		slots = append(slots, usecase.CreateTeamSlot{
			PlayerID:      slot.PlayerID,
			IsCaptain:     slot.IsCaptain,
			IsViceCaptain: slot.IsViceCaptain,
			IsSub:         slot.IsSub,
		})
	}

	created, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		OwnerUserID: principal.UserID,
		Name:        req.Name,
		Slots:       slots,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	t, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(t))
}

func (h *Handler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTeams")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teams, err := h.teamService.ListMyTeams(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my teams failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
