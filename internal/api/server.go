package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/quizhub/quizhub/internal/services"
	"github.com/quizhub/quizhub/internal/session"
)

type Server struct {
	AuthService    services.AuthService
	QuizService    services.QuizService
	ScoringService services.ScoringService
	AttemptService services.AttemptService
	Sessions       *session.Store

	validate *validator.Validate
}

func (s *Server) Routes() http.Handler {
	s.validate = validator.New()

	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.authMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.With(s.requireAuth).Post("/logout", s.handleLogout)
			r.With(s.requireAuth).Get("/profile", s.handleProfile)
		})

		r.Route("/quizzes", func(r chi.Router) {
			r.Get("/", s.handleListQuizzes)
			r.With(s.requireAuth).Post("/", s.handleCreateQuiz)
			r.Get("/{id}", s.handleGetQuiz)
			r.With(s.requireAuth).Put("/{id}", s.handleUpdateQuiz)
			r.With(s.requireAuth).Delete("/{id}", s.handleDeleteQuiz)
			r.With(s.requireAuth).Post("/{id}/submit", s.handleSubmitQuiz)
		})

		r.Route("/attempts", func(r chi.Router) {
			r.Get("/leaderboard", s.handleLeaderboard)
			r.With(s.requireAuth).Get("/mine", s.handleMyAttempts)
			r.With(s.requireAuth).Delete("/mine", s.handleClearAttempts)
		})
	})

	return r
}
