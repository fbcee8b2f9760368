// Package middleware contains the HTTP middleware the server installs on
// top of chi's own.
//
// Every middleware here has the usual shape:
//
//	func(next http.Handler) http.Handler
//
// so it composes with chi's Use() and with anything else in the chain.
package middleware

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
)

// statusRecorder captures what the handler sent. http.ResponseWriter does
// not expose the status once WriteHeader has been called.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer, which
// http.ServeContent and MaxBytesReader rely on for flushing and closing.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Logger logs one line per request: method, path, status, duration, bytes
// and the request id chimiddleware.RequestID assigned.
//
// Server errors are logged at Error, client errors at Warn, the rest at
// Info. The handler has already logged the cause of any 500 under the
// same request id.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return LoggerWithClock(logger, clockwork.NewRealClock())
}

// LoggerWithClock is Logger with an injectable clock for the duration.
func LoggerWithClock(logger *slog.Logger, clock clockwork.Clock) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := clock.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				status:         http.StatusOK, // if WriteHeader is never called
			}
			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			switch {
			case rec.status >= 500:
				level = slog.LevelError
			case rec.status >= 400:
				level = slog.LevelWarn
			}

			logger.LogAttrs(r.Context(), level, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", clock.Since(start)),
				slog.Int64("bytes", rec.written),
				slog.String("remote", r.RemoteAddr),
				slog.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
