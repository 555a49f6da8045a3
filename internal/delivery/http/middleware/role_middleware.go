package middleware

import (
	"net/http"

	"vetadmin/internal/domain/entity"
	"vetadmin/pkg/response"
)

// RequireRole checks that the authenticated session holds one of the allowed
// roles. The role is read from context, set by AuthMiddleware from JWT claims.
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdministrator guards the staff-management and audit endpoints.
func RequireAdministrator(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdministrator)(next)
}

// RequireStaff admits any authenticated clinic role.
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdministrator, entity.RoleVeterinarian, entity.RoleReceptionist)(next)
}
