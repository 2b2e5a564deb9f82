package api

import (
	"net/http"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.AttemptService.Leaderboard(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, entries)
}

func (s *Server) handleMyAttempts(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	entries, err := s.AttemptService.History(r.Context(), principal.ID, queryInt(r, "limit", 0))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, entries)
}

func (s *Server) handleClearAttempts(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	deleted, err := s.AttemptService.ClearHistory(r.Context(), principal.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int64{"deleted": deleted})
}
