package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrMissingCredential is returned when a guarded request carries no bearer token.
var ErrMissingCredential = errors.New("a token is required for authentication")

// Client-facing messages for guard failures.
const (
	MsgMissingCredential = "A token is required for authentication"
	MsgUnauthenticated   = "Invalid or expired token"
)

type contextKey string

// UserClaimsKey is the context key for user claims.
const UserClaimsKey = contextKey("userClaims")

// TokenVerifier is satisfied by *TokenService.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// It returns "" when the header is absent, uses another scheme, or has no token.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Guard rejects requests without a valid session token and attaches the
// decoded claims to the request context. Trust rests on the signature and
// expiry only; the credential store is never consulted here.
func Guard(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := BearerToken(r)
			if tokenStr == "" {
				writeGuardError(w, http.StatusForbidden, MsgMissingCredential)
				return
			}

			claims, err := verifier.Verify(tokenStr)
			if err != nil {
				writeGuardError(w, http.StatusUnauthorized, MsgUnauthenticated)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			log.Debug().Str("user_id", claims.UserID).Str("path", r.URL.Path).Msg("Authenticated request")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, UserClaimsKey, claims)
}

// ClaimsFromContext returns the claims attached by Guard.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	return claims, ok && claims != nil
}

func writeGuardError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
