package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader carries the request correlation ID. A caller-supplied value
// is reused so one trace spans the client and the server.
const traceIDHeader = "X-Trace-ID"

// withTraceID derives a per-request child logger tagged with trace_id,
// stores it in the request context, and echoes the ID on the response.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		requestLogger := h.logger.GetChildLogger()
		requestLogger.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(requestLogger.WithContext(r.Context())))
	})
}
