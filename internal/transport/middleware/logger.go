package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/reading-copilot/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, path,
// status code, duration, and context identifiers (request_id, user_id).
// The user ID is read from the innermost request context, so Auth may run
// after Logger in the chain.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if sw.userID != "" {
				attrs = append(attrs, slog.String("user_id", sw.userID))
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
// Unwrap lets http.ResponseController reach the underlying Flusher for SSE.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	userID      string
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// userRecorder is implemented by statusWriter so inner middleware can report
// the authenticated user back to the access log.
type userRecorder interface {
	recordUser(id string)
}

func (w *statusWriter) recordUser(id string) {
	w.userID = id
}

// reportUser walks the writer chain and reports id to the first recorder.
func reportUser(w http.ResponseWriter, id string) {
	for w != nil {
		if rec, ok := w.(userRecorder); ok {
			rec.recordUser(id)
			return
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return
		}
		w = u.Unwrap()
	}
}
