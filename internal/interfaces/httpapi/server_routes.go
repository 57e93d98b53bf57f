package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerName}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/transfers", handler.ListTransfers)
	mux.HandleFunc("GET /v1/ratings/teams", handler.ListTeamRatings)
	mux.HandleFunc("GET /v1/ratings/leagues", handler.ListLeagueRatings)
	mux.HandleFunc("POST /v1/simulations/transfer", handler.SimulateTransfer)
	mux.HandleFunc("POST /v1/simulations/transfers:batch", handler.SimulateTransferBatch)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/reference/reload", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ReloadReference)))
	mux.Handle("GET /v1/internal/reference/status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ReferenceStatus)))
}
