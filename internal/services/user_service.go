package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/halcyonlabs/userdir/internal/task"
	"github.com/halcyonlabs/userdir/pkg/hash"
)

// UserStore is the persistence boundary consumed by the services. Lookups
// return a nil user when nothing matches; only faults are errors.
type UserStore interface {
	FindByName(ctx context.Context, name string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, user *models.User) error
	FindPage(ctx context.Context, filter *models.UserFilter) (*models.UserPage, error)
	CheckAuth(ctx context.Context, name, hashedPassword string) (*models.User, error)
}

// UserService orchestrates user CRUD and search. Every operation runs as a
// unit of work on the task pool and returns a future; the resolved error is
// always one of the models sentinel categories.
type UserService struct {
	store  UserStore
	hasher hash.PasswordHasher
	pool   *task.Pool
	logger *slog.Logger
}

// NewUserService creates a UserService with explicit collaborators.
func NewUserService(store UserStore, hasher hash.PasswordHasher, pool *task.Pool, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		pool:   pool,
		logger: logger,
	}
}

// Create stores a new user. Any supplied id is ignored; the password is
// hashed before persisting. Fails with ErrCreateDenied when the name is
// already taken. Two concurrent creates for the same name can both pass the
// existence check; the store's unique index decides the race and the loser
// sees ErrConstraint.
func (s *UserService) Create(ctx context.Context, user *models.User) *task.Future[*models.User] {
	opCtx := context.WithoutCancel(ctx)
	u := *user

	return task.Submit(s.pool, func() (*models.User, error) {
		s.logger.Info("create user", slog.String("name", u.Name))

		existing, err := s.store.FindByName(opCtx, u.Name)
		if err != nil {
			return nil, s.translateErr(err)
		}
		if existing != nil {
			return nil, models.ErrCreateDenied
		}

		u.ID = ""
		u.Password = s.hasher.Hash(u.Password)

		saved, err := s.store.Save(opCtx, &u)
		if err != nil {
			return nil, s.translateErr(err)
		}
		return saved, nil
	})
}

// Retrieve returns the stored user with the given name. The password field
// is the stored hash; redacting it from responses is the pipeline's job.
func (s *UserService) Retrieve(ctx context.Context, name string) *task.Future[*models.User] {
	opCtx := context.WithoutCancel(ctx)

	return task.Submit(s.pool, func() (*models.User, error) {
		s.logger.Info("retrieve user", slog.String("name", name))

		user, err := s.store.FindByName(opCtx, name)
		if err != nil {
			return nil, s.translateErr(err)
		}
		if user == nil {
			return nil, models.ErrRetrieveNotFound
		}
		return user, nil
	})
}

// Update replaces the stored record matching user.Name. The caller must
// present the current record, id included; a mismatch fails with
// ErrUpdateDenied before anything is written. A password equal to the
// stored hash is kept untouched, anything else is treated as a new
// plaintext password and hashed exactly once.
func (s *UserService) Update(ctx context.Context, user *models.User) *task.Future[*models.User] {
	opCtx := context.WithoutCancel(ctx)
	u := *user

	return task.Submit(s.pool, func() (*models.User, error) {
		s.logger.Info("update user", slog.String("name", u.Name))

		current, err := s.store.FindByName(opCtx, u.Name)
		if err != nil {
			return nil, s.translateErr(err)
		}
		if current == nil {
			return nil, models.ErrUpdateNotFound
		}

		// Full-record guard. The password is compared through its own
		// transition rule below, so normalize it out first.
		candidate := u
		candidate.Password = current.Password
		if !models.SameRecord(current, &candidate) {
			return nil, models.ErrUpdateDenied
		}

		if u.Password != current.Password {
			u.Password = s.hasher.Hash(u.Password)
		}

		saved, err := s.store.Save(opCtx, &u)
		if err != nil {
			return nil, s.translateErr(err)
		}
		return saved, nil
	})
}

// Delete removes the named user. Self-deletion is refused before touching
// the store; deleting a user that does not exist succeeds silently.
func (s *UserService) Delete(ctx context.Context, name, callerName string) *task.Future[struct{}] {
	opCtx := context.WithoutCancel(ctx)

	return task.Submit(s.pool, func() (struct{}, error) {
		s.logger.Info("delete user",
			slog.String("name", name),
			slog.String("caller", callerName),
		)

		if name == callerName {
			return struct{}{}, models.ErrDeleteDenied
		}

		user, err := s.store.FindByName(opCtx, name)
		if err != nil {
			return struct{}{}, s.translateErr(err)
		}
		if user == nil {
			return struct{}{}, nil
		}

		if err := s.store.Delete(opCtx, user); err != nil {
			return struct{}{}, s.translateErr(err)
		}
		return struct{}{}, nil
	})
}

// FindUsers runs a query-by-example search with the sanitized filter.
func (s *UserService) FindUsers(ctx context.Context, filter *models.UserFilter) *task.Future[*models.UserPage] {
	opCtx := context.WithoutCancel(ctx)

	return task.Submit(s.pool, func() (*models.UserPage, error) {
		s.logger.Info("search users",
			slog.Int("page", filter.Page()),
			slog.Int("size", filter.Size()),
		)

		page, err := s.store.FindPage(opCtx, filter)
		if err != nil {
			return nil, s.translateErr(err)
		}
		return page, nil
	})
}

// translateErr keeps deliberate domain errors and recognized store faults
// as they are and folds everything else into ErrUnknown, so no raw
// infrastructure error ever crosses the service boundary.
func (s *UserService) translateErr(err error) error {
	switch {
	case models.IsDomainError(err):
		return err
	case errors.Is(err, models.ErrConstraint), errors.Is(err, models.ErrStoreAccess):
		s.logger.Error("store fault", slog.Any("error", err))
		return err
	default:
		s.logger.Error("unexpected fault", slog.Any("error", err))
		return fmt.Errorf("%w: %v", models.ErrUnknown, err)
	}
}
