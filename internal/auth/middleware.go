package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thecodejesters/visaadmin/internal/config"
	"github.com/thecodejesters/visaadmin/internal/identity"
)

// Claims is the subset of a Supabase access token the gate reads.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Middleware struct {
	secret    []byte
	allow     *AllowList
	devBypass bool
	devEmail  string
}

func NewMiddleware(cfg config.AuthConfig) *Middleware {
	devEmail := cfg.DevUserEmail
	if devEmail == "" {
		devEmail = config.DefaultDevUserEmail
	}
	return &Middleware{
		secret:    []byte(cfg.JWTSecret),
		allow:     NewAllowList(cfg.AdminEmails),
		devBypass: cfg.DevBypass,
		devEmail:  devEmail,
	}
}

// Authenticate resolves the caller's email and rejects anyone not on the allow-list.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := m.devEmail
		if !m.devBypass {
			var msg string
			email, msg = m.verify(r)
			if msg != "" {
				writeError(w, http.StatusUnauthorized, msg)
				return
			}
		}

		if !m.allow.IsAdmin(email) {
			slog.Warn("admin access denied", "email", email, "path", r.URL.Path)
			writeError(w, http.StatusForbidden, "access denied")
			return
		}

		ctx := identity.WithEmail(r.Context(), strings.ToLower(email))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verify returns the token's email, or a message describing why it was rejected.
func (m *Middleware) verify(r *http.Request) (string, string) {
	tokenStr := extractBearerToken(r)
	if tokenStr == "" {
		return "", "missing authorization token"
	}
	if len(m.secret) == 0 {
		return "", "invalid token"
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", "invalid token"
	}
	if claims.Email == "" {
		return "", "token has no email"
	}
	return claims.Email, ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
