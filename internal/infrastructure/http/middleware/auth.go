package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/config"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// IdentityClaims is the JWT claim set the auth provider issues
type IdentityClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	jwt.RegisteredClaims
}

// Authenticate validates the bearer token and stores the resolved identity
// in the request context. Requests without a valid identity never reach the
// handlers.
func Authenticate(cfg config.AuthConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				WriteError(w, r, errors.NewUnauthorizedError(""))
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims := &IdentityClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.JWTSecret), nil
			}, jwt.WithLeeway(cfg.ClockSkew))
			if err != nil || !token.Valid {
				logger.Debug("Rejected bearer token", zap.Error(err))
				WriteError(w, r, errors.NewUnauthorizedError("Invalid or expired token"))
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				WriteError(w, r, errors.NewUnauthorizedError("Invalid subject claim"))
				return
			}

			current := outbound.CurrentUser{
				ID:        userID,
				Email:     claims.Email,
				FirstName: claims.FirstName,
				LastName:  claims.LastName,
			}
			ctx := context.WithValue(r.Context(), currentUserKey, current)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUserFrom extracts the identity resolved by Authenticate.
func CurrentUserFrom(ctx context.Context) (outbound.CurrentUser, bool) {
	current, ok := ctx.Value(currentUserKey).(outbound.CurrentUser)
	return current, ok
}

// WithCurrentUser returns a context carrying the given identity. Intended
// for handler tests that bypass Authenticate.
func WithCurrentUser(ctx context.Context, current outbound.CurrentUser) context.Context {
	return context.WithValue(ctx, currentUserKey, current)
}
