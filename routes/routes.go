package routes

import (
	"github.com/fun-tournaments/qualbot/handlers"
	"github.com/fun-tournaments/qualbot/middleware"
	"github.com/fun-tournaments/qualbot/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	seedHandler *handlers.SeedHandler,
	seriesHandler *handlers.SeriesHandler,
	tournamentHandler *handlers.TournamentHandler,
	commandHandler *handlers.CommandHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/login", authHandler.Login)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.ListTeams)
		r.Get("/{teamID}", teamHandler.GetTeamByID)
		r.Get("/name/{teamName}", teamHandler.GetTeamByName)
		r.Post("/", teamHandler.RegisterTeam)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleOperator))

			r.Post("/{teamID}/logo", teamHandler.UploadTeamLogo)
			r.Delete("/{teamID}/logo", teamHandler.RemoveTeamLogo)
		})
	})

	router.Route("/seeds", func(r chi.Router) {
		r.Get("/", seedHandler.ListSeeds)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleOperator))

			r.Put("/", seedHandler.AssignSeed)
			r.Post("/auto", seedHandler.AutoAssignSeeds)
			r.Delete("/", seedHandler.ResetSeeds)
		})
	})

	router.Route("/series", func(r chi.Router) {
		r.Get("/", seriesHandler.ListSeries)
		r.Get("/{seriesID}", seriesHandler.GetSeriesByID)
		r.Post("/report", seriesHandler.ReportGame)
		r.Post("/confirm", seriesHandler.ConfirmGame)
	})

	router.Get("/rounds/{round}/series", seriesHandler.ListRoundSeries)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListUpcomingTournaments)
		r.Get("/active", tournamentHandler.GetActiveTournament)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.Authorize(models.RoleAdmin))

			r.Post("/", tournamentHandler.CreateTournament)
			r.Delete("/{tournamentName}", tournamentHandler.DeleteTournament)
			r.Post("/rounds", tournamentHandler.StartRound)
		})
	})

	// Command dispatch carries its own admin gating: admin commands are
	// hidden unless the JWT role allows them, so auth here is optional.
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthenticateOptional([]byte(jwtSecret)))
		r.Post("/commands", commandHandler.ExecuteCommand)
	})

	router.Get("/ws/teams/{teamID}", webSocketHandler.ServeWs)
}
