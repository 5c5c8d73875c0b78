package middleware

import (
	"net/http"

	"github.com/vitalvas/baasdoc/i18n"
)

// Language matches the Accept-Language header against the catalog and
// stores the printer of the chosen language in the request context.
func Language(catalog *i18n.Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := catalog.MatchHeader(r.Header.Get("Accept-Language"))

			w.Header().Set("Content-Language", tag.String())
			w.Header().Add("Vary", "Accept-Language")

			ctx := i18n.NewContext(r.Context(), catalog.Printer(tag))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
