package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, loginURL string) {
	auth := func(next http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, loginURL, next)
	}

	mux.Handle("POST /v1/session", auth(handler.CreateSession))
	mux.Handle("GET /v1/profile", auth(handler.GetProfile))
	mux.Handle("PUT /v1/profile", auth(handler.SaveProfile))
	mux.Handle("GET /v1/dashboard", auth(handler.GetDashboard))
	mux.Handle("GET /v1/games/{gameID}", auth(handler.GetGameDetails))
}
