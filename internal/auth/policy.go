package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/halcyonlabs/userdir/internal/models"
)

// Operation identifies a service operation for authorization purposes.
type Operation string

const (
	OpCreate   Operation = "create"
	OpRetrieve Operation = "retrieve"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpSearch   Operation = "search"
)

// Policy decides whether actor may perform op against the user named
// target (empty for operations without a single target). Policies are
// evaluated by the request pipeline before dispatching to the service;
// the service itself stays policy-free apart from the self-delete guard.
type Policy func(actor *models.User, op Operation, target string) bool

// DefaultPolicy grants mutations to admins and reads to any authenticated
// profile. Self-deletion is left to the service, which refuses it as a
// domain outcome rather than an authorization failure.
func DefaultPolicy(actor *models.User, op Operation, target string) bool {
	if actor == nil {
		return false
	}

	switch op {
	case OpCreate, OpUpdate, OpDelete:
		return actor.Profile == models.ProfileAdmin
	case OpRetrieve, OpSearch:
		return actor.Profile == models.ProfileAdmin || actor.Profile == models.ProfileUser
	default:
		return false
	}
}

// Authorize gates a route on the policy. The target user name is taken
// from the userName URL parameter when present.
func Authorize(policy Policy, op Operation) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFromContext(r.Context())
			target := chi.URLParam(r, "userName")

			if !policy(actor, op, target) {
				http.Error(w, "forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
