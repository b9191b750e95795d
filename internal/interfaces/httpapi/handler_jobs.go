package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oconaill/fantasy-gaa/internal/infrastructure/jobqueue"
	"github.com/oconaill/fantasy-gaa/internal/usecase"
)

// OutboxDrainer triggers one delivery sweep over pending outbox entries.
type OutboxDrainer interface {
	Drain(ctx context.Context) (jobqueue.DrainReport, error)
}

func (h *Handler) RunRecomputeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeJob")
	defer span.End()

	if h.recomputeService == nil {
		writeError(ctx, w, fmt.Errorf("%w: recompute service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.recomputeService.RecomputeSeason(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunOutboxDrainJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunOutboxDrainJob")
	defer span.End()

	if h.outboxDrainer == nil {
		writeError(ctx, w, fmt.Errorf("%w: outbox dispatcher is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.outboxDrainer.Drain(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "outbox drain job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

type syncMatchStatsRequest struct {
	MatchRef string `json:"match_ref" validate:"required"`
}

func (h *Handler) SyncMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncMatchStats")
	defer span.End()

	if h.ingestionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: stats feed ingestion is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req syncMatchStatsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.ingestionService.SyncMatchStats(ctx, req.MatchRef)
	if err != nil {
		h.logger.WarnContext(ctx, "match stats sync failed", "match_ref", req.MatchRef, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

type syncRoundRequest struct {
	Round int `json:"round" validate:"required,gt=0"`
}

func (h *Handler) SyncRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncRound")
	defer span.End()

	if h.ingestionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: stats feed ingestion is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req syncRoundRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.ingestionService.SyncRound(ctx, req.Round)
	if err != nil {
		h.logger.WarnContext(ctx, "round sync failed", "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
