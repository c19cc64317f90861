package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging logs every request with method, path, status, user and duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		// The auth middleware runs inside the mux on a derived context this
		// handler never sees, so it reports the user through a shared slot.
		userID := new(string)
		ctx := context.WithValue(r.Context(), userIDSlotKey, userID)

		next.ServeHTTP(rec, r.WithContext(ctx))

		duration := time.Since(start).Milliseconds()

		if rec.status >= http.StatusInternalServerError {
			slog.Error("Request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"user_id", *userID,
				"duration_ms", duration,
			)
			return
		}
		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"user_id", *userID,
			"duration_ms", duration,
		)
	})
}
