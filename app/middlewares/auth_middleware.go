package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/dsdryfruits/storefront/app/models"
	"github.com/dsdryfruits/storefront/app/repositories"
	"github.com/dsdryfruits/storefront/app/services"
	"github.com/dsdryfruits/storefront/app/utils/apierr"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type contextKey string

const ContextKeyClaims contextKey = "authClaims"

// ClaimsFromContext returns the verified token claims, if any.
func ClaimsFromContext(ctx context.Context) (*services.AuthClaims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*services.AuthClaims)
	return claims, ok
}

// VerifyToken requires a valid "Authorization: Bearer <jwt>" header and puts
// the parsed claims on the request context.
func VerifyToken(tokens *services.TokenService, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				_ = rnd.JSON(w, http.StatusUnauthorized, apierr.New(apierr.CodeUnauthorized, "authorization token required"))
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				zap.L().Debug("token verification failed", zap.Error(err))
				_ = rnd.JSON(w, http.StatusUnauthorized, apierr.New(apierr.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin re-loads the caller and checks the stored role. The role
// claim inside the token is never trusted on its own; a demoted admin's
// outstanding tokens must stop working immediately.
func RequireAdmin(userRepo repositories.UserRepositoryImpl, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.ID == "" {
				_ = rnd.JSON(w, http.StatusUnauthorized, apierr.New(apierr.CodeUnauthorized, "authorization token required"))
				return
			}

			user, err := userRepo.FindByID(r.Context(), claims.ID)
			if err != nil {
				zap.S().Errorf("RequireAdmin: error finding user %s: %v", claims.ID, err)
				_ = rnd.JSON(w, http.StatusUnauthorized, apierr.New(apierr.CodeUnauthorized, "user not found or session invalid"))
				return
			}
			if user == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, apierr.New(apierr.CodeUnauthorized, "user not found or session invalid"))
				return
			}

			if user.Role != models.RoleAdmin {
				zap.S().Warnf("RequireAdmin: user %s (%s) attempted an admin operation without admin role", user.ID, user.Email)
				_ = rnd.JSON(w, http.StatusForbidden, apierr.New(apierr.CodeForbidden, "forbidden"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
