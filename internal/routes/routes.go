package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/halcyonlabs/userdir/internal/auth"
	"github.com/halcyonlabs/userdir/internal/handlers"
	"github.com/halcyonlabs/userdir/internal/middleware"
)

// RegisterRoutes wires the API surface. Every endpoint sits behind Basic
// authentication; the policy predicate gates each operation before it
// reaches the service.
func RegisterRoutes(
	router chi.Router,
	userHandler *handlers.UserHandler,
	searchHandler *handlers.SearchHandler,
	authenticator auth.Authenticator,
	policy auth.Policy,
) {
	rateLimit := middleware.DefaultAPIRateLimit()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(rateLimit))
		r.Use(auth.BasicAuth(authenticator))

		r.With(auth.Authorize(policy, auth.OpCreate)).
			Post("/api/user", userHandler.CreateUser)
		r.With(auth.Authorize(policy, auth.OpRetrieve)).
			Get("/api/user/{userName}", userHandler.GetUser)
		r.With(auth.Authorize(policy, auth.OpUpdate)).
			Put("/api/user/{userName}", userHandler.UpdateUser)
		r.With(auth.Authorize(policy, auth.OpDelete)).
			Delete("/api/user/{userName}", userHandler.DeleteUser)
		r.With(auth.Authorize(policy, auth.OpSearch)).
			Post("/api/users", searchHandler.SearchUsers)
	})
}
