// Package middleware holds HTTP middleware shared across the router: CORS
// and per-client rate limiting.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the CORS policy of the server.
type CORSConfig struct {
	// AllowedMethods are the HTTP methods permitted in cross-origin
	// requests. Default: GET, POST, PUT, DELETE, OPTIONS.
	AllowedMethods []string

	// AllowedHeaders are the request headers permitted in cross-origin
	// requests. Default: Content-Type, Authorization, X-Request-ID.
	AllowedHeaders []string

	// MaxAge is how long preflight results may be cached, in seconds.
	// Default: 86400.
	MaxAge int
}

// DefaultCORSConfig returns the policy used by the API: any origin may
// call it. The catalogue is a public read-heavy service and mutating
// endpoints carry their own API key gate.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         86400,
	}
}

// CORS returns middleware applying the config. Preflight OPTIONS requests
// are answered directly with 204.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
