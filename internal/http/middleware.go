package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestLogger tags every request with a generated id and logs method,
// path, status and duration once the handler returns.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		level := slog.LevelInfo

		switch {
		case ww.Status() >= http.StatusInternalServerError:
			level = slog.LevelError
		case ww.Status() >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		slog.Log(ctx, level, "http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// RequestID returns the id assigned by RequestLogger, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
