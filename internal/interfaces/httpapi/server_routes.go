package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/fixtures", handler.ListFixturesByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListLeagueStandings)
	mux.HandleFunc("GET /v1/standings", handler.StandingsOverview)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/leagues/{leagueID}/fixtures/generate", RequireAdminToken(adminToken, http.HandlerFunc(handler.GenerateSchedule)))
	mux.Handle("PUT /v1/leagues/{leagueID}/fixtures/order", RequireAdminToken(adminToken, http.HandlerFunc(handler.ReorderFixtures)))
	mux.Handle("PUT /v1/leagues/{leagueID}/fixtures/{fixtureID}/result", RequireAdminToken(adminToken, http.HandlerFunc(handler.SubmitResult)))
	mux.Handle("DELETE /v1/leagues/{leagueID}/fixtures/{fixtureID}/result", RequireAdminToken(adminToken, http.HandlerFunc(handler.ClearResult)))
	mux.Handle("POST /v1/leagues/{leagueID}/results/import", RequireAdminToken(adminToken, http.HandlerFunc(handler.ImportResults)))
}
