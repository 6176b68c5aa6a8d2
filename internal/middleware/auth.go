package middleware

import (
	"net/http"

	"greencart-be/internal/auth"
	"greencart-be/internal/user"
	"greencart-be/internal/utils"
)

// AuthMiddleware populates the request context with the caller's identity when a
// valid token is present. It never rejects; handlers decide what requires auth.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := utils.WithUserID(r.Context(), claims.UserID)
		ctx = utils.WithUserEmail(ctx, claims.Email)
		ctx = utils.WithUserRole(ctx, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects requests that carry no authenticated user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			http.Error(w, `{"success":false,"message":"User not authenticated"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSeller rejects requests whose token does not carry the seller role.
func RequireSeller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := utils.GetUserRoleFromContext(r.Context())
		if !ok || role != utils.RoleSeller {
			http.Error(w, `{"success":false,"message":"Seller not authorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
