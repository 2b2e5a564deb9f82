package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/quizhub/quizhub/internal/errors"
	"github.com/quizhub/quizhub/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		// Wrap unknown errors as internal errors
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
