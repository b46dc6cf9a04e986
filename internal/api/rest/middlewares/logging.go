package middlewares

import (
	"log/slog"
	"net/http"
	"time"
)

// RequestLogger logs one entry per request once the response is written
type RequestLogger struct {
	logger *slog.Logger
}

// NewRequestLogger returns a new instance of RequestLogger
func NewRequestLogger(logger *slog.Logger) Middleware {
	return &RequestLogger{logger: logger}
}

// Handle logs method, route, status and duration of each request.
func (m *RequestLogger) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		m.logger.Log(
			r.Context(),
			level,
			"http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route(r),
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
