package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/dkrasnovs/filestash/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// withAuth verifies the bearer token and stores the claims in the request
// context. Requests without a valid token are rejected before any handler
// logic runs.
func (s *Server) withAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimsFromContext returns the verified claims stored by withAuth. Handlers
// pass the identity explicitly into service calls; nothing below the handler
// reads the request context for identity.
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
