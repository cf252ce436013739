package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/services"
)

type contextKey string

const callerContextKey contextKey = "caller"

// Authenticator validates the Bearer token and stores the resolved caller in
// the request context. Requests without a valid token are rejected.
func Authenticator(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := callerFromRequest(r, secret)
			if err != nil {
				http.Error(w, "invalid or missing token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(withCaller(r.Context(), caller)))
		})
	}
}

// RequireRole gates a route group to the listed roles. It assumes the
// Authenticator already ran.
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if caller.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "insufficient permissions", http.StatusForbidden)
		})
	}
}

func CallerFromContext(ctx context.Context) (services.Caller, bool) {
	caller, ok := ctx.Value(callerContextKey).(services.Caller)
	return caller, ok
}

func withCaller(ctx context.Context, caller services.Caller) context.Context {
	return context.WithValue(ctx, callerContextKey, caller)
}

func callerFromRequest(r *http.Request, secret []byte) (services.Caller, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return services.Caller{}, errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims := &services.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return services.Caller{}, errors.New("invalid token")
	}

	return services.Caller{
		UserID: claims.UserID,
		Role:   claims.Role,
		TeamID: claims.TeamID,
	}, nil
}
