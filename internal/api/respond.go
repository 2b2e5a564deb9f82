package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quizhub/quizhub/internal/errors"
	"github.com/quizhub/quizhub/internal/logger"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeJSON parses the request body into dst and runs struct validation.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	if err := s.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.NewValidationError(fe.Field(), "failed on '"+fe.Tag()+"' constraint")
		}
		return errors.NewValidationError("body", err.Error())
	}
	return nil
}
