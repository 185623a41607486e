package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "chatguard/internal/platform/errors"
	pnet "chatguard/internal/platform/net"
)

// AuthPort parses the caller identity from a request
type AuthPort interface {
	// Parse returns the caller id from the request or an error
	Parse(r *http.Request) (userID string, err error)
}

// Auth passes through when p is nil
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid)))
		})
	}
}

// AdminUser is the user id reported for a valid static token
const AdminUser = "admin"

// StaticToken accepts one shared bearer token for operator routes
type StaticToken string

// Parse checks the bearer token against the configured one
func (t StaticToken) Parse(r *http.Request) (string, error) {
	got := bearer(r.Header.Get("Authorization"))
	if got == "" || t == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(t)) != 1 {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return AdminUser, nil
}

// bearer returns the token of a case insensitive "Bearer x" header or ""
func bearer(authz string) string {
	const prefix = "bearer "
	if len(authz) < len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(authz[len(prefix):])
}
