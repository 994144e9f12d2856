package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecodejesters/visaadmin/internal/config"
	"github.com/thecodejesters/visaadmin/internal/identity"
)

const secret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, key string, method jwt.SigningMethod, email string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "5f0c8c1e-1111-4c3b-9a55-4d2f4d3c7e10",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func serve(m *Middleware, token string) (*httptest.ResponseRecorder, string) {
	var seen string
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = identity.EmailFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/permit-rules", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestAllowList(t *testing.T) {
	a := NewAllowList([]string{" Admin@Example.com ", "", "ops@example.com"})

	assert.Equal(t, 2, a.Len())
	assert.True(t, a.IsAdmin("admin@example.com"))
	assert.True(t, a.IsAdmin("ADMIN@EXAMPLE.COM"))
	assert.False(t, a.IsAdmin("someone@example.com"))
	assert.False(t, (*AllowList)(nil).IsAdmin("admin@example.com"))
}

func TestAuthenticate(t *testing.T) {
	m := NewMiddleware(config.AuthConfig{JWTSecret: secret, AdminEmails: []string{"admin@example.com"}})
	hour := time.Now().Add(time.Hour)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", signToken(t, "other-secret", jwt.SigningMethodHS256, "admin@example.com", hour), http.StatusUnauthorized},
		{"wrong algorithm", signToken(t, secret, jwt.SigningMethodHS512, "admin@example.com", hour), http.StatusUnauthorized},
		{"expired", signToken(t, secret, jwt.SigningMethodHS256, "admin@example.com", time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"no email", signToken(t, secret, jwt.SigningMethodHS256, "", hour), http.StatusUnauthorized},
		{"not an admin", signToken(t, secret, jwt.SigningMethodHS256, "user@example.com", hour), http.StatusForbidden},
		{"admin", signToken(t, secret, jwt.SigningMethodHS256, "Admin@Example.com", hour), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, seen := serve(m, tt.token)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, "admin@example.com", seen)
			} else {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestDevBypass(t *testing.T) {
	m := NewMiddleware(config.AuthConfig{DevBypass: true, AdminEmails: []string{config.DefaultDevUserEmail}})
	rec, seen := serve(m, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, config.DefaultDevUserEmail, seen)

	// the bypass identity still has to be allowed
	m = NewMiddleware(config.AuthConfig{DevBypass: true, DevUserEmail: "dev@corp.test", AdminEmails: []string{"admin@example.com"}})
	rec, _ = serve(m, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNoSecretRejectsTokens(t *testing.T) {
	m := NewMiddleware(config.AuthConfig{AdminEmails: []string{"admin@example.com"}})
	rec, _ := serve(m, signToken(t, secret, jwt.SigningMethodHS256, "admin@example.com", time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
