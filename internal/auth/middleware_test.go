package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardedRouter(t *testing.T, svc *TokenService, called *bool) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(Guard(svc))
	r.Get("/api/resource", func(w http.ResponseWriter, req *http.Request) {
		*called = true
		claims, ok := ClaimsFromContext(req.Context())
		require.True(t, ok)
		w.Write([]byte(claims.UserID))
	})
	return r
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestGuard_MissingHeaderIs403(t *testing.T) {
	svc := newTestTokenService(t, &fakeClock{t: time.Now()})
	called := false
	h := guardedRouter(t, svc, &called)

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, "header %q", header)
		assert.Equal(t, MsgMissingCredential, decodeMessage(t, rec))
	}
	assert.False(t, called)
}

func TestGuard_InvalidTokenIs401(t *testing.T) {
	svc := newTestTokenService(t, &fakeClock{t: time.Now()})
	called := false
	h := guardedRouter(t, svc, &called)

	req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, MsgUnauthenticated, decodeMessage(t, rec))
	assert.False(t, called)
}

func TestGuard_ExpiredTokenIs401(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestTokenService(t, clock)
	tok, err := svc.Issue(Identity{UserID: "u-1"})
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Hour)
	called := false
	h := guardedRouter(t, svc, &called)

	req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestGuard_ValidTokenAttachesClaims(t *testing.T) {
	svc := newTestTokenService(t, &fakeClock{t: time.Now()})
	tok, err := svc.Issue(Identity{UserID: "u-42", Name: "Ravi", Email: "ravi@example.com"})
	require.NoError(t, err)

	called := false
	h := guardedRouter(t, svc, &called)

	req := httptest.NewRequest(http.MethodGet, "/api/resource", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, "u-42", rec.Body.String())
}

func TestClaimsFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ClaimsFromContext(req.Context())
	assert.False(t, ok)
}
