package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/services"
)

const SessionCookieName = "rbm_session"

type contextKey string

const sessionContextKey contextKey = "session"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.AuthSession, error)
}

// Authenticate resolves the request's token to a live session and stores it in the context.
func Authenticate(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			session, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, services.ErrSessionExpired):
					writeError(w, http.StatusUnauthorized, "session has expired, please log in again")
				case errors.Is(err, services.ErrAuthenticationFailed):
					writeError(w, http.StatusUnauthorized, "invalid token")
				default:
					logger.Error("failed to authenticate request", "error", err, "path", r.URL.Path)
					writeError(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
				}
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize lets the request through only when the session has one of roles.
func Authorize(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := GetUserRoleFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "Forbidden")
		})
	}
}

// TokenFromRequest reads the bearer token, then the session cookie. Websocket
// handshakes may also pass it as ?token= since browsers cannot set headers there.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
			return strings.TrimSpace(h[7:])
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return r.URL.Query().Get("token")
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
