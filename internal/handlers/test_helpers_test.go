package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/halcyonlabs/userdir/internal/task"
	"github.com/halcyonlabs/userdir/pkg/logger"
)

// MockCrudService implements UserCrudService for testing. Operations run on
// a real pool so the futures behave exactly as in production.
type MockCrudService struct {
	pool *task.Pool

	CreateFunc    func(ctx context.Context, user *models.User) (*models.User, error)
	RetrieveFunc  func(ctx context.Context, name string) (*models.User, error)
	UpdateFunc    func(ctx context.Context, user *models.User) (*models.User, error)
	DeleteFunc    func(ctx context.Context, name, callerName string) error
	FindUsersFunc func(ctx context.Context, filter *models.UserFilter) (*models.UserPage, error)
}

func newMockCrudService(t *testing.T) *MockCrudService {
	t.Helper()
	pool := task.NewPool(task.Config{MinWorkers: 2, MaxWorkers: 4}, testLogger())
	t.Cleanup(pool.Stop)
	return &MockCrudService{pool: pool}
}

func (m *MockCrudService) Create(ctx context.Context, user *models.User) *task.Future[*models.User] {
	return task.Submit(m.pool, func() (*models.User, error) {
		if m.CreateFunc != nil {
			return m.CreateFunc(ctx, user)
		}
		saved := *user
		saved.ID = "generated-id"
		return &saved, nil
	})
}

func (m *MockCrudService) Retrieve(ctx context.Context, name string) *task.Future[*models.User] {
	return task.Submit(m.pool, func() (*models.User, error) {
		if m.RetrieveFunc != nil {
			return m.RetrieveFunc(ctx, name)
		}
		return nil, models.ErrRetrieveNotFound
	})
}

func (m *MockCrudService) Update(ctx context.Context, user *models.User) *task.Future[*models.User] {
	return task.Submit(m.pool, func() (*models.User, error) {
		if m.UpdateFunc != nil {
			return m.UpdateFunc(ctx, user)
		}
		return user, nil
	})
}

func (m *MockCrudService) Delete(ctx context.Context, name, callerName string) *task.Future[struct{}] {
	return task.Submit(m.pool, func() (struct{}, error) {
		if m.DeleteFunc != nil {
			return struct{}{}, m.DeleteFunc(ctx, name, callerName)
		}
		return struct{}{}, nil
	})
}

func (m *MockCrudService) FindUsers(ctx context.Context, filter *models.UserFilter) *task.Future[*models.UserPage] {
	return task.Submit(m.pool, func() (*models.UserPage, error) {
		if m.FindUsersFunc != nil {
			return m.FindUsersFunc(ctx, filter)
		}
		return &models.UserPage{Content: []models.User{}}, nil
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAudit() *logger.AuditLogger {
	return logger.NewAuditLogger(testLogger())
}

// withURLParam injects a chi route parameter into the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validUserBody() string {
	return `{
		"profile": "USER",
		"name": "alice-admin",
		"email": "alice@example.com",
		"password": "secret123",
		"address": "1 Main St",
		"phone": "12345678"
	}`
}
