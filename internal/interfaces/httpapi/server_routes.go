package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/draft", handler.GetDraftStatus)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/roster", handler.ListRoster)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("POST /v1/leagues/{leagueID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeague)))
	mux.Handle("POST /v1/leagues/{leagueID}/draft/start", RequireAuth(verifier, http.HandlerFunc(handler.StartDraft)))
	mux.Handle("POST /v1/leagues/{leagueID}/draft/picks", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPick)))
}
