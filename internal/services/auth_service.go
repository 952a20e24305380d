package services

import (
	"context"
	"log/slog"

	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/halcyonlabs/userdir/pkg/hash"
)

// AuthService verifies name/password credentials against the user store.
type AuthService struct {
	store  UserStore
	hasher hash.PasswordHasher
	logger *slog.Logger
}

func NewAuthService(store UserStore, hasher hash.PasswordHasher, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// CheckAuth hashes the supplied plaintext once and asks the store for a
// user matching name and digest in a single compound lookup. A nil user
// with a nil error is the valid "no match" outcome, not a failure.
func (s *AuthService) CheckAuth(ctx context.Context, name, password string) (*models.User, error) {
	s.logger.Info("login attempt", slog.String("name", name))

	hashed := s.hasher.Hash(password)
	return s.store.CheckAuth(ctx, name, hashed)
}
