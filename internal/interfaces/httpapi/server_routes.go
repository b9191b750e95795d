package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/gameweeks", handler.ListGameweeks)
	mux.HandleFunc("GET /v1/gameweeks/active", handler.GetActiveGameweek)
	mux.HandleFunc("GET /v1/gameweeks/{gameweekNumber}/matches", handler.ListMatchesByGameweek)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("GET /v1/my/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
	mux.Handle("POST /v1/teams/{teamID}/transfers", RequireAuth(verifier, http.HandlerFunc(handler.ExecuteTransfer)))
	mux.Handle("POST /v1/teams/{teamID}/transfers/validate", RequireAuth(verifier, http.HandlerFunc(handler.ValidateTransfer)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/matches", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("PUT /v1/internal/matches/{matchID}/score", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpdateMatchScore)))
	mux.Handle("PUT /v1/internal/matches/{matchID}/performances/{playerID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ApplyPerformance)))
	mux.Handle("PUT /v1/internal/gameweeks", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpsertGameweek)))
	mux.Handle("POST /v1/internal/jobs/recompute", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeJob)))
	mux.Handle("POST /v1/internal/jobs/outbox-drain", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunOutboxDrainJob)))
	mux.Handle("POST /v1/internal/ingestion/match-stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncMatchStats)))
	mux.Handle("POST /v1/internal/ingestion/rounds", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncRound)))
}
