package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"planets-api/internal/auth"
	"planets-api/internal/shared/errors"
	"planets-api/internal/shared/response"
)

type contextKey string

const principalContextKey contextKey = "principal"

// RequireAuth is the authorization gate for mutating routes. It accepts the
// auth cookie or a Bearer header, validates the token, and injects the typed
// Principal into the request context. Requests failing validation never reach
// the handler.
func RequireAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "auth",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			logger.Debug("Processing authentication")

			token := extractToken(r)
			if token == "" {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := authService.ValidateToken(token)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("invalid token"))
				return
			}

			principal := auth.Principal{Username: claims.Username}
			ctx := context.WithValue(r.Context(), principalContextKey, principal)

			logger.Debug("Authentication successful", "username", principal.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("auth_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

// PrincipalFromContext returns the principal the auth gate attached to the
// request. The boolean is false on routes that never passed the gate.
func PrincipalFromContext(r *http.Request) (auth.Principal, bool) {
	principal, ok := r.Context().Value(principalContextKey).(auth.Principal)
	return principal, ok
}

// WithPrincipal attaches a principal to a request context. Exported for
// handler tests that bypass the middleware.
func WithPrincipal(ctx context.Context, principal auth.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}
