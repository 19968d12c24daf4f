package http

import (
	"net/http"
	"time"

	"github.com/forecastflow/forecastflow/internal/logger"
)

// withLogging emits one summary line per request: method, URI, response
// status, body size, and handling duration. The response writer is wrapped so
// status and size can be read back after the handler ran.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(ww, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", ww.status).
			Int("size", ww.size).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
