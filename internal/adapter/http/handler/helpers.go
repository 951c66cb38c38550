package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/gowager/internal/adapter/http/dto"
	"github.com/iho/gowager/internal/adapter/http/middleware"
	"github.com/iho/gowager/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrWagerNotFound),
		errors.Is(err, domain.ErrCompetitorNotFound),
		errors.Is(err, domain.ErrNoSnapshot):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotWagerOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrWageringClosed),
		errors.Is(err, domain.ErrInvalidMatchState),
		errors.Is(err, domain.ErrWagerNotPending),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrExposureCapReached):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidStake),
		errors.Is(err, domain.ErrUnsupportedMarket),
		errors.Is(err, domain.ErrInvalidSide),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrWinnerRequired),
		errors.Is(err, domain.ErrWinnerNotInMatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// accountID returns the caller's account from the request context. The
// identity middleware guarantees it is present on protected routes.
func accountID(ctx context.Context) string {
	id, _ := middleware.AccountFromContext(ctx)
	return id
}
