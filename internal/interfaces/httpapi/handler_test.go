package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/oconaill/fantasy-gaa/internal/domain/scoring"
	"github.com/oconaill/fantasy-gaa/internal/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/domain/user"
	"github.com/oconaill/fantasy-gaa/internal/infrastructure/repository/memory"
	"github.com/oconaill/fantasy-gaa/internal/platform/id"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
	"github.com/oconaill/fantasy-gaa/internal/usecase"
)

const testInternalJobToken = "job-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	teamRepo := memory.NewTeamRepository(nil)
	gameweekRepo := memory.NewGameweekRepository(memory.SeedGameweeks())
	outboxRepo := memory.NewOutboxRepository()

	rules := team.DefaultRules()
	idGen := id.NewRandomGenerator()
	logger := logging.NewNop()

	playerService := usecase.NewPlayerService(playerRepo, nil)
	teamService := usecase.NewTeamService(teamRepo, playerRepo, rules, idGen)
	transferService := usecase.NewTransferService(teamRepo, playerRepo, rules, logger)
	matchService := usecase.NewMatchService(matchRepo, gameweekRepo, idGen)
	gameweekService := usecase.NewGameweekService(gameweekRepo)
	settlementService := usecase.NewSettlementService(matchRepo, playerRepo, teamRepo, outboxRepo, scoring.DefaultRubric(), idGen, logger)
	recomputeService := usecase.NewRecomputeService(matchRepo, playerRepo, teamRepo, gameweekRepo, logger)

	handler := NewHandler(
		playerService,
		teamService,
		transferService,
		matchService,
		gameweekService,
		settlementService,
		recomputeService,
		nil,
		nil,
		logger,
	)

	verifier := staticVerifier{principals: map[string]user.Principal{
		"manager-token": {UserID: "user-manager", Email: "manager@example.com"},
	}}

	return NewRouter(handler, verifier, logger, []string{"*"}, testInternalJobToken)
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := sonic.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response envelope: %v", err)
	}
	return envelope.Data
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ListPlayersByCounty(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/players?county="+memory.CountyCork, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []playerDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal players: %v", err)
	}
	if len(envelope.Data) == 0 {
		t.Fatal("expected seeded Cork players")
	}
	for _, p := range envelope.Data {
		if p.County != memory.CountyCork {
			t.Fatalf("expected only Cork players, got %s from %s", p.ID, p.County)
		}
	}
}

func TestRouter_TeamRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/my/teams", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_CreateAndFetchTeam(t *testing.T) {
	router := newTestRouter(t)

	playerIDs := []string{
		"gal-gk-01", "gal-def-01", "gal-fwd-01",
		"cor-gk-01", "cor-def-01", "cor-mid-01",
		"kil-def-01", "kil-mid-01", "kil-fwd-01",
		"lim-def-01", "lim-mid-01", "lim-fwd-01",
		"tip-def-01", "tip-fwd-01", "cla-fwd-01",
	}
	slots := make([]map[string]any, 0, len(playerIDs))
	for i, playerID := range playerIDs {
		slots = append(slots, map[string]any{
			"player_id":       playerID,
			"is_captain":      i == 0,
			"is_vice_captain": i == 1,
			"is_sub":          i >= 11,
		})
	}

	auth := map[string]string{"Authorization": "Bearer manager-token"}
	rec := doJSON(t, router, http.MethodPost, "/v1/teams", map[string]any{
		"name":  "Salthill Scorchers",
		"slots": slots,
	}, auth)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	created := decodeData(t, rec)
	teamID, _ := created["id"].(string)
	if teamID == "" {
		t.Fatalf("expected team id in response, got %v", created)
	}
	if owner, _ := created["owner_user_id"].(string); owner != "user-manager" {
		t.Fatalf("expected owner from principal, got %q", owner)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/teams/"+teamID, nil, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	fetched := decodeData(t, rec)
	roster, _ := fetched["roster"].([]any)
	if len(roster) != 15 {
		t.Fatalf("expected 15 roster slots, got %d", len(roster))
	}
}

func TestRouter_CreateTeamRejectsShortRoster(t *testing.T) {
	router := newTestRouter(t)

	auth := map[string]string{"Authorization": "Bearer manager-token"}
	rec := doJSON(t, router, http.MethodPost, "/v1/teams", map[string]any{
		"name": "Short Squad",
		"slots": []map[string]any{
			{"player_id": "gal-gk-01", "is_captain": true},
			{"player_id": "gal-def-01", "is_vice_captain": true},
		},
	}, auth)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ApplyPerformanceWithJobToken(t *testing.T) {
	router := newTestRouter(t)

	headers := map[string]string{"X-Internal-Job-Token": testInternalJobToken}
	rec := doJSON(t, router, http.MethodPut, "/v1/internal/matches/mt-gw1-gal-cor/performances/gal-fwd-01", map[string]any{
		"goals":          2,
		"points":         4,
		"minutes_played": 70,
	}, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	// 2 goals, 4 points, 70 minutes: 2*3 + 4 + 2 = 12.
	if total, _ := data["player_total"].(float64); int(total) != 12 {
		t.Fatalf("expected player total 12, got %v", data["player_total"])
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/matches/mt-gw1-gal-cor", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_InternalRoutesRejectBadToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/internal/jobs/recompute", nil, map[string]string{
		"X-Internal-Job-Token": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_IngestionUnconfigured(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/internal/ingestion/match-stats", map[string]any{
		"match_ref": "feed-gal-cor",
	}, map[string]string{"X-Internal-Job-Token": testInternalJobToken})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when ingestion is not wired, got %d: %s", rec.Code, rec.Body.String())
	}
}
