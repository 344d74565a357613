package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler, admin func(http.HandlerFunc) http.Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/matches", handler.ListSeasonMatches)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.GetStandings)

	mux.Handle("POST /v1/seasons", admin(handler.CreateSeason))
	mux.Handle("DELETE /v1/seasons/{seasonID}", admin(handler.DeleteSeason))
	mux.Handle("POST /v1/seasons/{seasonID}/progression", admin(handler.CheckProgression))
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, admin func(http.HandlerFunc) http.Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)

	mux.Handle("POST /v1/matches/{matchID}/toss", admin(handler.Toss))
	mux.Handle("POST /v1/matches/{matchID}/balls", admin(handler.RecordBall))
	mux.Handle("DELETE /v1/matches/{matchID}/balls/last", admin(handler.UndoBall))
	mux.Handle("POST /v1/matches/{matchID}/innings/second", admin(handler.StartSecondInnings))
	mux.Handle("POST /v1/matches/{matchID}/reload", admin(handler.ReloadMatch))
	mux.Handle("POST /v1/matches/{matchID}/super-over", admin(handler.CreateSuperOver))
	mux.Handle("POST /v1/matches/{matchID}/bowl-out-decider", admin(handler.CreateBowlOutDecider))
	mux.Handle("POST /v1/matches/{matchID}/bowl-out", admin(handler.RecordBowlOut))
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
}
