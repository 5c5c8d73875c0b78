package middleware

import (
	"net/http"
	"os"
)

// HostnameConfig configures Hostname.
type HostnameConfig struct {
	// Hostname wins over HostnameEnv and os.Hostname.
	Hostname string

	// HostnameEnv lists environment variables checked in order, such as
	// POD_NAME.
	HostnameEnv []string
}

// Hostname sets the X-Server-Hostname response header. The hostname is
// resolved once.
func Hostname(cfg HostnameConfig) (func(http.Handler) http.Handler, error) {
	hostname := cfg.Hostname
	if hostname == "" {
		for _, env := range cfg.HostnameEnv {
			if v, ok := os.LookupEnv(env); ok && v != "" {
				hostname = v
				break
			}
		}
	}

	if hostname == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, err
		}
		hostname = h
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Server-Hostname", hostname)
			next.ServeHTTP(w, r)
		})
	}, nil
}
