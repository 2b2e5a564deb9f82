package api

import (
	"net/http"

	"github.com/quizhub/quizhub/internal/logger"
	"github.com/quizhub/quizhub/internal/models"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req credentialsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.AuthService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("registered new user: %s", user.Username)
	respondJSON(w, r, http.StatusCreated, map[string]any{"user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	token := s.Sessions.Create(user.ID)
	respondJSON(w, r, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		s.Sessions.Delete(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]any{"user": principalFromContext(r.Context())})
}
