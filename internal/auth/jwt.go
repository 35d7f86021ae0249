package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

var (
	// ErrMissingSigningKey is returned when the token service is built without a secret.
	ErrMissingSigningKey = errors.New("jwt signing key is not configured")

	// ErrUnauthenticated covers every reason a presented token is rejected.
	ErrUnauthenticated = errors.New("invalid or expired token")
)

// Internal failure reasons. They are only logged; callers see ErrUnauthenticated.
var (
	errTokenExpired    = errors.New("token expired")
	errTokenInvalidSig = errors.New("token signature invalid")
	errTokenMalformed  = errors.New("token malformed")
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is what a session token is issued for.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for iat/exp and validation.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a token service. An empty secret is a configuration error.
func NewTokenService(secret []byte, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSigningKey
	}
	s := &TokenService{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue creates a signed token for the given identity.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: id.UserID,
		Name:   id.Name,
		Email:  id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	token, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		log.Debug().Err(classify(err)).Msg("Rejected session token")
		return nil, ErrUnauthenticated
	}
	if !token.Valid || claims.UserID == "" {
		log.Debug().Err(errTokenMalformed).Msg("Rejected session token")
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// classify maps jwt library errors to a failure reason.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return errTokenInvalidSig
	default:
		return errTokenMalformed
	}
}
