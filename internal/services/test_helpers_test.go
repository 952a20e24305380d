package services

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/halcyonlabs/userdir/internal/task"
)

// MockUserStore implements UserStore for testing.
type MockUserStore struct {
	FindByNameFunc func(ctx context.Context, name string) (*models.User, error)
	FindByIDFunc   func(ctx context.Context, id string) (*models.User, error)
	SaveFunc       func(ctx context.Context, user *models.User) (*models.User, error)
	DeleteFunc     func(ctx context.Context, user *models.User) error
	FindPageFunc   func(ctx context.Context, filter *models.UserFilter) (*models.UserPage, error)
	CheckAuthFunc  func(ctx context.Context, name, hashedPassword string) (*models.User, error)

	SaveCalls   atomic.Int64
	DeleteCalls atomic.Int64
}

func (m *MockUserStore) FindByName(ctx context.Context, name string) (*models.User, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserStore) Save(ctx context.Context, user *models.User) (*models.User, error) {
	m.SaveCalls.Add(1)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	saved := *user
	if saved.ID == "" {
		saved.ID = "generated-id"
	}
	return &saved, nil
}

func (m *MockUserStore) Delete(ctx context.Context, user *models.User) error {
	m.DeleteCalls.Add(1)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, user)
	}
	return nil
}

func (m *MockUserStore) FindPage(ctx context.Context, filter *models.UserFilter) (*models.UserPage, error) {
	if m.FindPageFunc != nil {
		return m.FindPageFunc(ctx, filter)
	}
	return &models.UserPage{Content: []models.User{}}, nil
}

func (m *MockUserStore) CheckAuth(ctx context.Context, name, hashedPassword string) (*models.User, error) {
	if m.CheckAuthFunc != nil {
		return m.CheckAuthFunc(ctx, name, hashedPassword)
	}
	return nil, nil
}

// MockHasher prefixes instead of hashing and counts invocations.
type MockHasher struct {
	Calls atomic.Int64
}

func (m *MockHasher) Hash(plaintext string) string {
	m.Calls.Add(1)
	return "hashed:" + plaintext
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPool(t *testing.T) *task.Pool {
	t.Helper()
	pool := task.NewPool(task.Config{MinWorkers: 2, MaxWorkers: 4}, testLogger())
	t.Cleanup(pool.Stop)
	return pool
}

// NewTestUser builds a stored user with the mock hasher's digest form.
func NewTestUser(id, name, email string) *models.User {
	return &models.User{
		ID:       id,
		Profile:  models.ProfileUser,
		Name:     name,
		Email:    email,
		Password: "hashed:secret123",
		Address:  "1 Main St",
		Phone:    "12345678",
	}
}
