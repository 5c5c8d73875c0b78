package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/vitalvas/baasdoc/render"
	"github.com/vitalvas/baasdoc/respcode"
)

// CodeInternal is answered when a handler panics and RecoveryConfig.Code is
// not set.
var CodeInternal = respcode.New(respcode.System, "DEV_ERR", http.StatusInternalServerError, "Internal error")

// RecoveryConfig configures Recovery.
type RecoveryConfig struct {
	// Logger receives the panic; nil disables logging.
	Logger *slog.Logger

	// Code is the response code written to the client.
	Code *respcode.Code
}

// Recovery turns handler panics into an error response.
func Recovery(cfg RecoveryConfig) func(http.Handler) http.Handler {
	code := CodeInternal
	if cfg.Code != nil {
		code = *cfg.Code
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				if cfg.Logger != nil {
					cfg.Logger.ErrorContext(r.Context(), "handler panic",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", RequestIDFromContext(r.Context()),
						"stack", string(debug.Stack()),
					)
				}

				render.Error(w, r, code)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
