// Package rbac gates routes on the identity set by middleware.Authenticate.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/lodge/pkg/middleware"
	"github.com/shashiranjanraj/lodge/pkg/response"
)

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.UserIDFromCtx(r); !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HasRole allows only identities holding one of roles. Anonymous requests
// get 401, authenticated ones without the role get 403.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := middleware.UserIDFromCtx(r); !ok {
				response.Unauthorized(w)
				return
			}
			role, _ := middleware.RoleFromCtx(r)
			if !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
