package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/batch"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/engine"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rules"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/sprite"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/store"
)

// classifyError maps a domain error onto an HTTP status and error type.
func classifyError(err error) (int, string) {
	var provErr *engine.ProvenanceError
	if errors.As(err, &provErr) {
		return http.StatusBadRequest, ErrTypeInvalidProvenance
	}

	var specErr *sprite.InvalidSpecError
	if errors.As(err, &specErr) {
		return http.StatusBadRequest, ErrTypeInvalidSpec
	}

	var confErr *rules.ConfigurationError
	if errors.As(err, &confErr) {
		return http.StatusInternalServerError, ErrTypeConfiguration
	}

	switch {
	case errors.Is(err, batch.ErrNoTokens), errors.Is(err, batch.ErrTooManyTokens):
		return http.StatusBadRequest, ErrTypeValidation
	case errors.Is(err, batch.ErrPolicy):
		return http.StatusUnprocessableEntity, ErrTypePolicy
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, ErrTypeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, ErrTypeTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, ErrTypeTimeout
	}

	return http.StatusInternalServerError, ErrTypeInternal
}

// handleDomainError classifies err and writes the structured response.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error, context map[string]interface{}) {
	status, errType := classifyError(err)
	s.writeError(w, r, status, errType, err.Error(), context)
}

// recoverer turns panics into structured 500 responses instead of closed
// connections.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				requestID := middleware.GetReqID(r.Context())

				s.log.Error().
					Str("request_id", requestID).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", rvr).
					Msg("panic recovered")

				s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal,
					"Internal server error", map[string]interface{}{
						"panic": fmt.Sprintf("%v", rvr),
					})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
