package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequirePermission checks if the caller's role has a specific permission
func RequirePermission(permission employee.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			role := employee.Role(roleStr)
			if !employee.HasPermission(role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but role is '%s'", permission, role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
