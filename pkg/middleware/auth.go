package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/logger"
	"github.com/shashiranjanraj/lodge/pkg/response"
)

// Authenticate verifies the Bearer token with gw and stores the identity in
// the request context. Requests without a token pass through anonymous; a
// token that does not verify is rejected with 401.
//
//	r.Use(middleware.Authenticate(gateway))
//	r.Group("/api/orders", fn, rbac.RequireAuth)
func Authenticate(gw auth.Gateway) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := gw.Verify(r.Context(), token)
			if err != nil {
				var gerr *auth.GatewayError
				if errors.As(err, &gerr) {
					logger.WithCtx(r.Context()).Error("auth: verify failed", "error", err)
					response.Error(w, http.StatusBadGateway, "Authentication service unavailable")
					return
				}
				response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			log := logger.WithCtx(r.Context()).With("user_id", id.UserID)
			ctx := logger.InjectLogger(auth.WithIdentity(r.Context(), id), log)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// BearerToken returns the raw token the caller authenticated with.
func BearerToken(r *http.Request) string { return bearerToken(r) }

// UserIDFromCtx returns the authenticated user's ID.
func UserIDFromCtx(r *http.Request) (string, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok || id.UserID == "" {
		return "", false
	}
	return id.UserID, true
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		return "", false
	}
	return id.Role, true
}
