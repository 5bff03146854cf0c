package middlewares

import (
	"net/http"
	"slices"
	"strings"
)

// CORSMiddleware answers cross-origin requests for the configured origins.
// A lone "*" entry allows any origin; otherwise the request origin is echoed
// back when it matches the list, with Vary set so caches keep origins apart.
// The API is read/write over GET and POST with bearer auth, no cookies, so
// credentials are never allowed.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAny := slices.Contains(allowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				switch {
				case allowAny:
					w.Header().Set("Access-Control-Allow-Origin", "*")
				case originAllowed(origin, allowedOrigins):
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, candidate := range allowed {
		if strings.EqualFold(origin, candidate) {
			return true
		}
	}
	return false
}
