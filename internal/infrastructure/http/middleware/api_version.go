package middleware

import (
	"net/http"
	"strings"
)

// APIVersion stamps the X-API-Version response header. Requests under a
// versioned /api/vN prefix report that version; everything else reports the
// configured default.
func APIVersion(defaultVersion string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			version := defaultVersion
			if rest, ok := strings.CutPrefix(r.URL.Path, "/api/v"); ok {
				if i := strings.IndexByte(rest, '/'); i > 0 {
					version = rest[:i]
				}
			}
			w.Header().Set("X-API-Version", version)
			next.ServeHTTP(w, r)
		})
	}
}
