package middleware

import (
	"net/http"

	"github.com/emsportal/ems/internal/domain/auth"
	"github.com/emsportal/ems/internal/domain/user"
	"github.com/emsportal/ems/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireRole allows the request through only when the token's role claim is one of roles
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			roleStr, _ := claims["role"].(string)
			for _, role := range roles {
				if user.Role(roleStr) == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.HandleError(w, user.ErrAdminPrivilegeRequired)
		})
	}
}

// AdminOnly requires the admin role
func AdminOnly(next http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin)(next)
}
