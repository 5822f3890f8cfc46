package middleware

import (
	"context"
	"net/http"

	"karak-pos/internal/auth"
)

type contextKey string

const roleKey contextKey = "role"

// RoleFromCtx returns the role attached by the Auth middleware, empty
// when the request carried no valid session.
func RoleFromCtx(ctx context.Context) auth.Role {
	role, _ := ctx.Value(roleKey).(auth.Role)
	return role
}

// Auth attaches the session role to the request context. Requests
// without a valid token pass through unauthenticated; the per-route
// gates decide what they may reach.
func Auth(svc auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractSessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			role, err := svc.Verify(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUnlocked rejects requests from devices that have not entered
// any PIN.
func RequireUnlocked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromCtx(r.Context()) == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates the destructive surface: shift reset, archival,
// cost edits.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromCtx(r.Context()) != auth.RoleAdmin {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
