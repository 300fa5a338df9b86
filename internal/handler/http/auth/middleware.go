// Package auth gates mutating endpoints behind a shared API key.
//
// Clients present the key as a bearer token:
//
//	Authorization: Bearer <API_KEY>
//
// The gate is only enforced in production mode; in development every
// request passes so local tooling needs no credentials.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"vid-catalog/internal/handler/http/respond"
)

const bearerPrefix = "Bearer "

var (
	errMissingToken = errors.New("missing or malformed Authorization header")
	errInvalidToken = errors.New("invalid API key")
)

// Guard validates the shared API key on every request it wraps.
type Guard struct {
	apiKey  string
	enforce bool
}

// NewGuard builds a Guard for the given key. enforce selects production
// behavior; with enforce false the guard passes everything through.
func NewGuard(apiKey string, enforce bool) *Guard {
	return &Guard{apiKey: apiKey, enforce: enforce}
}

// Middleware rejects requests without a valid bearer token when the guard
// is enforcing. Comparison is constant-time.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.enforce {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respond.Error(w, http.StatusUnauthorized, errMissingToken)
			return
		}

		token := strings.TrimPrefix(header, bearerPrefix)
		if subtle.ConstantTimeCompare([]byte(token), []byte(g.apiKey)) != 1 {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respond.Error(w, http.StatusUnauthorized, errInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
