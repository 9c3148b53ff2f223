package http

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/http/handlers"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/logging"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogger injects a request-scoped logger into the context and logs
// one line per request once it completes.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := base.With("method", r.Method, "path", r.URL.Path)
			r = r.WithContext(logging.Inject(r.Context(), reqLog))

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			reqLog.Info("request",
				"status", rw.statusCode,
				"duration", time.Since(start).String(),
				"ip", r.RemoteAddr,
			)
		})
	}
}

// Recovery catches panics from downstream handlers, logs the stack trace
// server-side, and answers with the opaque 500 envelope. The caller never
// sees the diagnostic detail.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logging.FromCtx(r.Context()).Error("panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
				)
				handlers.RespondJSON(w, http.StatusInternalServerError, handlers.MessageResponse{Message: "Internal server error."})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
