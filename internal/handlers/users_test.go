package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halcyonlabs/userdir/internal/auth"
	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Success(t *testing.T) {
	svc := newMockCrudService(t)
	handler := NewUserHandler(svc, testAudit())

	req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(validUserBody()))
	rec := httptest.NewRecorder()

	handler.CreateUser(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "generated-id", resp.ID)
	assert.Equal(t, "alice-admin", resp.Name)
}

func TestCreateUser_PasswordNeverInResponse(t *testing.T) {
	svc := newMockCrudService(t)
	svc.CreateFunc = func(ctx context.Context, user *models.User) (*models.User, error) {
		saved := *user
		saved.ID = "generated-id"
		saved.Password = "stored-digest"
		return &saved, nil
	}
	handler := NewUserHandler(svc, testAudit())

	req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(validUserBody()))
	rec := httptest.NewRecorder()

	handler.CreateUser(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "stored-digest")
}

func TestCreateUser_InvalidBody(t *testing.T) {
	handler := NewUserHandler(newMockCrudService(t), testAudit())

	req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	handler.CreateUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUser_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"short name", `{"profile":"USER","name":"abc","email":"a@example.com","password":"secret123"}`},
		{"bad profile", `{"profile":"ROOT","name":"alice-admin","email":"a@example.com","password":"secret123"}`},
		{"bad email", `{"profile":"USER","name":"alice-admin","email":"nope","password":"secret123"}`},
		{"short password", `{"profile":"USER","name":"alice-admin","email":"a@example.com","password":"abc"}`},
		{"bad phone", `{"profile":"USER","name":"alice-admin","email":"a@example.com","password":"secret123","phone":"12ab"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewUserHandler(newMockCrudService(t), testAudit())

			req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.CreateUser(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateUser_NameTaken(t *testing.T) {
	svc := newMockCrudService(t)
	svc.CreateFunc = func(ctx context.Context, user *models.User) (*models.User, error) {
		return nil, models.ErrCreateDenied
	}
	handler := NewUserHandler(svc, testAudit())

	req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(validUserBody()))
	rec := httptest.NewRecorder()

	handler.CreateUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "create_denied")
}

func TestGetUser_Success(t *testing.T) {
	svc := newMockCrudService(t)
	svc.RetrieveFunc = func(ctx context.Context, name string) (*models.User, error) {
		return &models.User{
			ID:       "id-1",
			Profile:  models.ProfileUser,
			Name:     name,
			Email:    "alice@example.com",
			Password: "stored-digest",
		}, nil
	}
	handler := NewUserHandler(svc, testAudit())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/user/alice-admin", nil), "userName", "alice-admin")
	rec := httptest.NewRecorder()

	handler.GetUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice-admin", resp.Name)
	assert.NotContains(t, rec.Body.String(), "stored-digest")
}

func TestGetUser_NotFound(t *testing.T) {
	handler := NewUserHandler(newMockCrudService(t), testAudit())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/user/ghost", nil), "userName", "ghost")
	rec := httptest.NewRecorder()

	handler.GetUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_Success(t *testing.T) {
	svc := newMockCrudService(t)
	handler := NewUserHandler(svc, testAudit())

	req := withURLParam(
		httptest.NewRequest(http.MethodPut, "/api/user/alice-admin", strings.NewReader(validUserBody())),
		"userName", "alice-admin",
	)
	rec := httptest.NewRecorder()

	handler.UpdateUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateUser_BodyNameMismatch(t *testing.T) {
	handler := NewUserHandler(newMockCrudService(t), testAudit())

	req := withURLParam(
		httptest.NewRequest(http.MethodPut, "/api/user/bob-target", strings.NewReader(validUserBody())),
		"userName", "bob-target",
	)
	rec := httptest.NewRecorder()

	handler.UpdateUser(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateUser_RecordMismatch(t *testing.T) {
	svc := newMockCrudService(t)
	svc.UpdateFunc = func(ctx context.Context, user *models.User) (*models.User, error) {
		return nil, models.ErrUpdateDenied
	}
	handler := NewUserHandler(svc, testAudit())

	req := withURLParam(
		httptest.NewRequest(http.MethodPut, "/api/user/alice-admin", strings.NewReader(validUserBody())),
		"userName", "alice-admin",
	)
	rec := httptest.NewRecorder()

	handler.UpdateUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "update_denied")
}

func TestDeleteUser_Success(t *testing.T) {
	var gotName, gotCaller string
	svc := newMockCrudService(t)
	svc.DeleteFunc = func(ctx context.Context, name, callerName string) error {
		gotName, gotCaller = name, callerName
		return nil
	}
	handler := NewUserHandler(svc, testAudit())

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/user/bob-target", nil), "userName", "bob-target")
	req = req.WithContext(auth.WithActor(req.Context(), &models.User{ID: "id-9", Name: "alice-admin"}))
	rec := httptest.NewRecorder()

	handler.DeleteUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob-target", gotName)
	assert.Equal(t, "alice-admin", gotCaller)
}

func TestDeleteUser_SelfDelete(t *testing.T) {
	svc := newMockCrudService(t)
	svc.DeleteFunc = func(ctx context.Context, name, callerName string) error {
		return models.ErrDeleteDenied
	}
	handler := NewUserHandler(svc, testAudit())

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/user/alice-admin", nil), "userName", "alice-admin")
	req = req.WithContext(auth.WithActor(req.Context(), &models.User{ID: "id-1", Name: "alice-admin"}))
	rec := httptest.NewRecorder()

	handler.DeleteUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "delete_denied")
}
