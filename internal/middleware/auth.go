package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"pawguard/internal/domain"
)

type ctxKey int

const userKey ctxKey = iota

// Claims is the token payload issued by the mobile auth flow.
type Claims struct {
	UserID      string `json:"userID"`
	DisplayName string `json:"displayName"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token and puts the caller's UserRef on the
// request context. Handlers read it back with UserFromContext.
func JWTAuth(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid || claims.UserID == "" {
				logger.Warn("JWT rejected", slog.String("remote", r.RemoteAddr))
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			user := domain.UserRef{UserID: claims.UserID, DisplayName: claims.DisplayName}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func WithUser(ctx context.Context, u domain.UserRef) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the authenticated caller set by JWTAuth.
func UserFromContext(ctx context.Context) (domain.UserRef, bool) {
	u, ok := ctx.Value(userKey).(domain.UserRef)
	return u, ok
}

// APIKeyMiddleware guards the admin routes with a static key.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
