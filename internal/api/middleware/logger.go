package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger logs one line per request: request ID, method, path, status and
// duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// Strip CR/LF from user-supplied values so a crafted path cannot
		// forge log lines.
		sanitize := strings.NewReplacer("\n", "", "\r", "").Replace

		reqID := middleware.GetReqID(r.Context())
		if reqID == "" {
			reqID = "-"
		}

		log.Printf(
			"%s %s %s %d %s",
			reqID,
			sanitize(r.Method),
			sanitize(r.URL.Path),
			ww.Status(),
			time.Since(start).Round(time.Microsecond),
		)
	})
}
