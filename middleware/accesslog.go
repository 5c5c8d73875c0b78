package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ObserveFunc receives every finished request. Route is the chi route
// pattern, empty when no route matched.
type ObserveFunc func(method, route string, status int, elapsed time.Duration)

// AccessLogConfig configures AccessLog.
type AccessLogConfig struct {
	// Logger receives one record per request; nil disables logging.
	Logger *slog.Logger

	// Observe is called after the record is written.
	Observe ObserveFunc

	// SkipPaths are neither logged nor observed.
	SkipPaths []string
}

// AccessLog logs and observes every request once the handler returns.
func AccessLog(cfg AccessLogConfig) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			var route string
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}

			if cfg.Logger != nil {
				level := slog.LevelInfo
				if status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
				cfg.Logger.LogAttrs(r.Context(), level, "request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("route", route),
					slog.Int("status", status),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("elapsed", elapsed),
					slog.String("request_id", RequestIDFromContext(r.Context())),
				)
			}

			if cfg.Observe != nil {
				cfg.Observe(r.Method, route, status, elapsed)
			}
		})
	}
}
