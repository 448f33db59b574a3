package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/esterlin12/tvplus/internal/apperr"
	"github.com/esterlin12/tvplus/internal/auth"
	"github.com/esterlin12/tvplus/internal/metrics"
	"github.com/esterlin12/tvplus/internal/models"
)

type key string

const userKey key = "user"

// TokenDecoder verifies a bearer token.
type TokenDecoder interface {
	Decode(token string) (*auth.Claims, error)
}

// UserResolver looks up the user named by a token subject.
type UserResolver interface {
	ByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator resolves the caller from the Authorization header.
type Authenticator struct {
	Tokens TokenDecoder
	Users  UserResolver
	Logger *slog.Logger
}

// RequireUser rejects requests without a valid bearer token for an existing user (401)
// and stores the resolved user in the request context.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			metrics.RecordAuthFailure("missing")
			unauthorized(w, "not authenticated")
			return
		}

		claims, err := a.Tokens.Decode(token)
		if err != nil {
			reason := auth.Reason(err)
			metrics.RecordAuthFailure(reason)
			a.logger().Debug("token rejected", "reason", reason, "path", r.URL.Path)
			unauthorized(w, "could not validate credentials")
			return
		}

		user, err := a.Users.ByUsername(r.Context(), claims.Subject)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				metrics.RecordAuthFailure("user_not_found")
				unauthorized(w, "user not found")
				return
			}
			a.logger().Error("resolve token subject", "error", err)
			writeJSONError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireSuperUser must run after RequireUser; it rejects non-super users with 403.
func RequireSuperUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w, "not authenticated")
			return
		}
		if !user.IsSuperUser {
			writeJSONError(w, "not enough permissions", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser returns ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user stored by RequireUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

func (a *Authenticator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// bearerToken extracts the token from "Authorization: Bearer <token>". The scheme is case-insensitive.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, message, http.StatusUnauthorized)
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
