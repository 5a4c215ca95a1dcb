package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/halloffame/hall-of-fame/handlers"
	"github.com/halloffame/hall-of-fame/middleware"
)

// SetupRoutes mounts the whole API. Reads are public; every mutating
// route sits behind the admin token.
func SetupRoutes(
	router *chi.Mux,
	verifier middleware.TokenVerifier,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	gameHandler *handlers.GameHandler,
	matchHandler *handlers.MatchHandler,
	tournamentHandler *handlers.TournamentHandler,
	statsHandler *handlers.StatsHandler,
	backupHandler *handlers.BackupHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticated := middleware.Authenticate(verifier)

	router.Get("/healthz", healthHandler.Healthz)

	router.Post("/auth/login", authHandler.Login)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.GetAllPlayers)
		r.Get("/{playerID}", playerHandler.GetPlayerByID)
		r.Get("/{playerID}/matches", playerHandler.GetPlayerMatches)
		r.Get("/{playerID}/stats", playerHandler.GetPlayerStats)
		r.Get("/{playerID}/badges", playerHandler.GetPlayerBadges)
		r.Get("/{playerID}/profile", playerHandler.GetPlayerProfile)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/", playerHandler.CreatePlayer)
			r.Put("/{playerID}", playerHandler.UpdatePlayer)
			r.Delete("/{playerID}", playerHandler.DeletePlayer)
		})
	})

	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.GetAllGames)
		r.Get("/{gameID}", gameHandler.GetGameByID)
		r.Get("/{gameID}/matches", gameHandler.GetGameMatches)
		r.Get("/{gameID}/ranking", gameHandler.GetGameRanking)
		r.Get("/{gameID}/best-player", gameHandler.GetBestPlayer)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/", gameHandler.CreateGame)
			r.Put("/{gameID}", gameHandler.UpdateGame)
			r.Delete("/{gameID}", gameHandler.DeleteGame)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.GetAllMatches)
		r.Get("/recent", matchHandler.GetRecentMatches)
		r.Get("/statistics", matchHandler.GetMatchStatistics)
		r.Get("/compatible-tournaments", matchHandler.GetCompatibleTournaments)
		r.Get("/{matchID}", matchHandler.GetMatchByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/", matchHandler.CreateMatch)
			r.Put("/{matchID}", matchHandler.UpdateMatch)
			r.Delete("/{matchID}", matchHandler.DeleteMatch)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.GetAllTournaments)
		r.Get("/{tournamentID}", tournamentHandler.GetTournamentByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/", tournamentHandler.CreateTournament)
			r.Put("/{tournamentID}", tournamentHandler.UpdateTournament)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteTournament)
		})
	})

	router.Route("/rankings", func(r chi.Router) {
		r.Get("/", statsHandler.GetRanking)
		r.Get("/top", statsHandler.GetTopPlayers)
		r.Get("/search", statsHandler.SearchPlayers)
		r.Get("/view", statsHandler.GetView)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Put("/view", statsHandler.UpdateView)
		})
	})

	router.Route("/stats", func(r chi.Router) {
		r.Get("/overall", statsHandler.GetOverallStats)
		r.Get("/counts", statsHandler.GetEntityCounts)
		r.Get("/has-data", statsHandler.GetHasData)
	})

	router.Route("/backup", func(r chi.Router) {
		r.Use(authenticated)
		r.Get("/export", backupHandler.ExportBackup)
		r.Post("/import", backupHandler.ImportBackup)
		r.Post("/auto", backupHandler.TriggerAutoBackup)
	})
}
