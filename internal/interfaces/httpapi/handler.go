package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
	"github.com/oconaill/fantasy-gaa/internal/usecase"
)

type Handler struct {
	playerService     *usecase.PlayerService
	teamService       *usecase.TeamService
	transferService   *usecase.TransferService
	matchService      *usecase.MatchService
	gameweekService   *usecase.GameweekService
	settlementService *usecase.SettlementService
	recomputeService  *usecase.RecomputeService
	ingestionService  *usecase.IngestionService
	outboxDrainer     OutboxDrainer
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	transferService *usecase.TransferService,
	matchService *usecase.MatchService,
	gameweekService *usecase.GameweekService,
	settlementService *usecase.SettlementService,
	recomputeService *usecase.RecomputeService,
	ingestionService *usecase.IngestionService,
	outboxDrainer OutboxDrainer,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:     playerService,
		teamService:       teamService,
		transferService:   transferService,
		matchService:      matchService,
		gameweekService:   gameweekService,
		settlementService: settlementService,
		recomputeService:  recomputeService,
		ingestionService:  ingestionService,
		outboxDrainer:     outboxDrainer,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	county := strings.TrimSpace(r.URL.Query().Get("county"))
	players, err := h.playerService.ListPlayers(ctx, county)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "county", county, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	p, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) ListGameweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweeks")
	defer span.End()

	gameweeks, err := h.gameweekService.ListGameweeks(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list gameweeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameweekDTO, 0, len(gameweeks))
	for _, gw := range gameweeks {
		items = append(items, gameweekToDTO(gw))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetActiveGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveGameweek")
	defer span.End()

	gw, err := h.gameweekService.GetActiveGameweek(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get active gameweek failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(gw))
}

func (h *Handler) ListMatchesByGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByGameweek")
	defer span.End()

	number, err := parsePathInt(r, "gameweekNumber")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.matchService.ListByGameweek(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "gameweek", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}
