package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dartsliga/league-system/handlers"
	"github.com/dartsliga/league-system/middleware"
	"github.com/dartsliga/league-system/models"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Season    *handlers.SeasonHandler
	Team      *handlers.TeamHandler
	Player    *handlers.PlayerHandler
	Match     *handlers.MatchHandler
	Standings *handlers.StandingsHandler
	Stats     *handlers.StatsHandler
	Post      *handlers.PostHandler
	User      *handlers.UserHandler
	Export    *handlers.ExportHandler
	Live      *handlers.LiveHandler
}

// Setup builds the router: a public read surface, a result-entry group for
// admins and captains, and an admin-only management group.
func Setup(h Handlers, jwtSecret string, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticator(jwtSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	resultEntry := middleware.RequireRole(models.RoleAdmin, models.RoleCaptain)

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/captain-login", h.Auth.CaptainPinLogin)

		r.Get("/seasons", h.Season.List)
		r.Get("/seasons/current", h.Season.Current)
		r.Get("/seasons/{seasonID}", h.Season.Get)
		r.Get("/seasons/{seasonID}/teams", h.Team.ListBySeason)
		r.Get("/seasons/{seasonID}/matches", h.Match.ListBySeason)
		r.Get("/seasons/{seasonID}/standings", h.Standings.GetBySeason)
		r.Get("/seasons/{seasonID}/stats", h.Stats.SeasonLeaderboard)
		r.Get("/seasons/{seasonID}/teams/{teamID}/stats", h.Stats.TeamStats)
		r.Get("/seasons/{seasonID}/players/{playerID}/stats", h.Stats.PlayerStats)
		r.Get("/seasons/{seasonID}/standings/export", h.Export.Standings)
		r.Get("/standings/current", h.Standings.GetCurrent)

		r.Get("/teams/{teamID}", h.Team.Get)
		r.Get("/teams/{teamID}/players", h.Player.ListByTeam)
		r.Get("/players/{playerID}", h.Player.Get)
		r.Get("/matches/{matchID}", h.Match.Get)
		r.Get("/matches/{matchID}/report.pdf", h.Export.MatchReport)

		r.Get("/posts", h.Post.List)
		r.Get("/posts/{postID}", h.Post.Get)

		r.Get("/ws/seasons/{seasonID}", h.Live.SeasonFeed)

		// Any authenticated identity
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/auth/me", h.User.Me)
		})

		// Result entry: admins and team captains
		r.Group(func(r chi.Router) {
			r.Use(authenticate, resultEntry)
			r.Post("/matches/{matchID}/result/quick", h.Match.SubmitQuickResult)
			r.Post("/matches/{matchID}/result/detailed", h.Match.SubmitDetailedResult)
		})

		// Administration
		r.Group(func(r chi.Router) {
			r.Use(authenticate, adminOnly)

			r.Post("/seasons", h.Season.Create)
			r.Put("/seasons/{seasonID}", h.Season.Update)
			r.Post("/seasons/{seasonID}/activate", h.Season.Activate)
			r.Delete("/seasons/{seasonID}", h.Season.Delete)

			r.Post("/teams", h.Team.Create)
			r.Put("/teams/{teamID}", h.Team.Update)
			r.Put("/teams/{teamID}/captain", h.Team.SetCaptain)
			r.Put("/teams/{teamID}/pin", h.Team.SetPin)
			r.Post("/teams/{teamID}/logo", h.Team.UploadLogo)
			r.Delete("/teams/{teamID}/logo", h.Team.RemoveLogo)
			r.Delete("/teams/{teamID}", h.Team.Delete)

			r.Post("/players", h.Player.Create)
			r.Put("/players/{playerID}", h.Player.Update)
			r.Delete("/players/{playerID}", h.Player.Delete)

			r.Post("/matches", h.Match.Schedule)
			r.Put("/matches/{matchID}", h.Match.Reschedule)
			r.Delete("/matches/{matchID}", h.Match.Delete)

			r.Get("/admin/posts", h.Post.ListAll)
			r.Post("/posts", h.Post.Create)
			r.Put("/posts/{postID}", h.Post.Update)
			r.Post("/posts/{postID}/image", h.Post.UploadImage)
			r.Delete("/posts/{postID}", h.Post.Delete)

			r.Get("/users", h.User.List)
			r.Post("/users", h.User.Create)
			r.Get("/users/{userID}", h.User.Get)
			r.Put("/users/{userID}", h.User.Update)
			r.Delete("/users/{userID}", h.User.Delete)
		})
	})

	return r
}
