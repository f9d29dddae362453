package middleware

import (
	"net/http"
	"strings"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate resolves the request identity. Requests without an
// Authorization header proceed as anonymous so public endpoints keep
// working; a header that is present but malformed, unsigned, expired or
// pointing at a deleted account is rejected with 401. Authorization
// decisions (403) are left to RequireRole, which runs afterwards.
func Authenticate(tokens *utils.TokenManager, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r.WithContext(utils.SetIdentity(r.Context(), utils.Anonymous)))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				logger.Warn("Token verification failed",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			user, err := userRepo.FindByUsername(r.Context(), claims.Username)
			if err != nil {
				logger.Error("Failed to load user for token subject",
					zap.Error(err),
					zap.String("username", claims.Username))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Token subject no longer exists", zap.String("username", claims.Username))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetIdentity(r.Context(), utils.Identity{User: user})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !utils.GetIdentity(r.Context()).Authenticated() {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole admits only authenticated users whose role is in the allowed
// set. Runs after Authenticate: a missing identity is an authentication
// failure (401), a wrong role an authorization failure (403).
func RequireRole(logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[entity.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := utils.GetIdentity(r.Context())
			if !ident.Authenticated() {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !allowed[ident.Role()] {
				logger.Warn("Role check failed",
					zap.String("username", ident.User.Username),
					zap.String("role", string(ident.Role())),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Not enough permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
