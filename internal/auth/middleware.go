package auth

import (
	"context"
	"net/http"

	"github.com/halcyonlabs/userdir/internal/models"
)

// contextKey is a private type for context keys.
type contextKey string

// actorContextKey holds the authenticated user for the request.
const actorContextKey contextKey = "actor"

// Authenticator verifies a name/password pair, returning nil on no match.
type Authenticator interface {
	CheckAuth(ctx context.Context, name, password string) (*models.User, error)
}

// BasicAuth authenticates requests with HTTP Basic credentials against the
// user store and injects the matched user into the request context.
// Credentials are re-checked on every request; there is no session state.
func BasicAuth(authenticator Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, password, ok := r.BasicAuth()
			if !ok || name == "" || password == "" {
				w.Header().Set("WWW-Authenticate", `Basic realm="userdir"`)
				http.Error(w, "missing credentials", http.StatusUnauthorized)
				return
			}

			user, err := authenticator.CheckAuth(r.Context(), name, password)
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="userdir"`)
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), actorContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext returns the authenticated user, or nil outside an
// authenticated request.
func ActorFromContext(ctx context.Context) *models.User {
	actor, ok := ctx.Value(actorContextKey).(*models.User)
	if !ok {
		return nil
	}
	return actor
}

// WithActor returns a context carrying the given user as the actor.
// Intended for tests and internal dispatch.
func WithActor(ctx context.Context, actor *models.User) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}
