package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emsportal/ems/internal/domain/user"
	"github.com/emsportal/ems/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func protected(t *testing.T, svc jwt.Service, mw ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	h := okHandler()
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return jwtauth.Verifier(svc.JWTAuth())(h)
}

func TestAuthRequiredAndAdminOnly(t *testing.T) {
	svc, err := jwt.NewJWTService("secret", "1h")
	require.NoError(t, err)

	adminToken, _, err := svc.GenerateAccessToken("u1", "admin@acme.io", user.RoleAdmin)
	require.NoError(t, err)
	employeeToken, _, err := svc.GenerateAccessToken("u2", "bob@acme.io", user.RoleEmployee)
	require.NoError(t, err)

	h := protected(t, svc, AuthRequired, AdminOnly)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"employee role", "Bearer " + employeeToken, http.StatusForbidden},
		{"admin role", "Bearer " + adminToken, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/employees", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, c.want, w.Code)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	h := rl.Handler(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
