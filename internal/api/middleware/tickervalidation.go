// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/income-strategy/engine/internal/api/response"
	"github.com/income-strategy/engine/internal/validation"
)

// ValidateTickerMiddleware validates that the ticker URL parameter is present
// and belongs to the tracked fund set. Returns 400 Bad Request otherwise.
// Apply it to routes that carry a ticker in the URL path.
//
// Example usage in router:
//
//	r.Route("/{ticker}", func(r chi.Router) {
//	    r.Use(middleware.ValidateTickerMiddleware)
//	    r.Get("/", handler.GetHistory)
//	})
func ValidateTickerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ticker := chi.URLParam(r, "ticker")

		if ticker == "" {
			response.RespondError(w, http.StatusBadRequest, "ticker is required", "")
			return
		}

		if err := validation.ValidateTicker(ticker); err != nil {
			response.RespondError(w, http.StatusBadRequest, "unknown ticker", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
