package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// NewCORS builds the CORS policy for the dashboard front-end. The API is
// cookie-less, so credentials stay disabled.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
}
