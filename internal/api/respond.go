package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/ec-shop/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps domain error kinds onto HTTP statuses: bad input is
// 400, missing aggregates 404, wrong lifecycle state 409, and violated
// business policy 422. Anything unrecognized is a 500 with the detail kept
// out of the response.
func respondDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		invalidOpErr  *domain.InvalidOperationError
		ruleErr       *domain.BusinessRuleError
	)

	switch {
	case errors.As(err, &validationErr):
		respondError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &notFoundErr):
		respondError(w, notFoundErr.Error(), http.StatusNotFound)
	case errors.As(err, &invalidOpErr):
		respondJSON(w, http.StatusConflict, map[string]string{
			"error": invalidOpErr.Error(),
			"state": invalidOpErr.State,
		})
	case errors.As(err, &ruleErr):
		respondError(w, ruleErr.Error(), http.StatusUnprocessableEntity)
	default:
		logger.Error("unhandled error", zap.Error(err))
		respondError(w, "internal server error", http.StatusInternalServerError)
	}
}
