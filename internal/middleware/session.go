package middleware

import (
	"errors"
	"net/http"
	"strings"

	"fabric-shop/internal/session"

	"github.com/rs/zerolog"
)

// SessionAuth verifies a bearer session token when one is present and stores
// its claims in the request context. Requests without a token pass through.
func SessionAuth(manager *session.Manager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("malformed authorization header")
				writeUnauthorised(w, "Invalid session token.")
				return
			}

			claims, err := manager.Validate(strings.TrimSpace(token))
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("rejected session token")
				message := "Invalid session token."
				if errors.Is(err, session.ErrExpiredToken) {
					message = "Session expired."
				}
				writeUnauthorised(w, message)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithClaims(r.Context(), claims)))
		})
	}
}

func writeUnauthorised(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"UNAUTHORIZED","message":"` + message + `"}`))
}
