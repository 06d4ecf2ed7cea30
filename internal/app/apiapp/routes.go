package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authsvc "github.com/mlebedz/pairline/backend/internal/services/auth"
	matchessvc "github.com/mlebedz/pairline/backend/internal/services/matches"
	matchingsvc "github.com/mlebedz/pairline/backend/internal/services/matching"
	mediasvc "github.com/mlebedz/pairline/backend/internal/services/media"
	notessvc "github.com/mlebedz/pairline/backend/internal/services/notes"
	profilesvc "github.com/mlebedz/pairline/backend/internal/services/profiles"
	searchsvc "github.com/mlebedz/pairline/backend/internal/services/search"
	"github.com/mlebedz/pairline/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService    *authsvc.Service
	ProfileService *profilesvc.Service
	MatchingEngine *matchingsvc.Engine
	MatchService   *matchessvc.Service
	NoteService    *notessvc.Service
	SearchService  *searchsvc.Service
	MediaService   *mediasvc.Service
	Logger         *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Logger)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService, deps.Logger)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchingEngine, deps.MatchService, deps.Logger)
	notesHandler := handlers.NewNotesHandler(deps.NoteService, deps.Logger)
	searchHandler := handlers.NewSearchHandler(deps.SearchService, deps.Logger)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService, deps.Logger)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Healthz)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", profileHandler.Get)
		r.Put("/", profileHandler.Update)
		r.Post("/onboarding", profileHandler.Onboard)
		r.Post("/avatar", mediaHandler.UploadAvatar)
	})

	r.Route("/matches", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/candidate", matchesHandler.FindCandidate)
		r.Post("/accept", matchesHandler.Accept)
		r.Post("/decline", matchesHandler.Decline)
		r.Get("/current", matchesHandler.ListCurrent)
		r.Get("/past", matchesHandler.ListPast)
		r.Post("/{matchID}/archive", matchesHandler.Archive)
	})

	r.Route("/notes/match/{matchID}", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", notesHandler.Get)
		r.Put("/", notesHandler.Save)
		r.Delete("/", notesHandler.Delete)
	})

	r.Route("/search", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/users", searchHandler.SearchUsers)
		r.Get("/users/{userID}", searchHandler.GetUser)
		r.Post("/users/{userID}/follow", searchHandler.Follow)
		r.Delete("/users/{userID}/follow", searchHandler.Unfollow)
	})
}
