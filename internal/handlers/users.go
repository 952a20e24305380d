package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/halcyonlabs/userdir/internal/auth"
	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/halcyonlabs/userdir/internal/task"
	httpx "github.com/halcyonlabs/userdir/pkg/http"
	"github.com/halcyonlabs/userdir/pkg/logger"
)

// UserCrudService is the asynchronous service surface consumed by the
// pipeline. Each operation returns a future resolved on a pool worker.
type UserCrudService interface {
	Create(ctx context.Context, user *models.User) *task.Future[*models.User]
	Retrieve(ctx context.Context, name string) *task.Future[*models.User]
	Update(ctx context.Context, user *models.User) *task.Future[*models.User]
	Delete(ctx context.Context, name, callerName string) *task.Future[struct{}]
	FindUsers(ctx context.Context, filter *models.UserFilter) *task.Future[*models.UserPage]
}

// UserHandler handles the user CRUD endpoints.
type UserHandler struct {
	service UserCrudService
	audit   *logger.AuditLogger
}

func NewUserHandler(service UserCrudService, audit *logger.AuditLogger) *UserHandler {
	return &UserHandler{
		service: service,
		audit:   audit,
	}
}

// UserRequest is the request body for create and update.
type UserRequest struct {
	ID       string `json:"id,omitempty"`
	Profile  string `json:"profile" validate:"required,oneof=ADMIN USER"`
	Name     string `json:"name" validate:"required,min=5,max=25"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Address  string `json:"address" validate:"omitempty,max=255"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
}

func (req *UserRequest) toModel() *models.User {
	return &models.User{
		ID:       req.ID,
		Profile:  req.Profile,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Phone:    req.Phone,
	}
}

// UserResponse is a user as rendered to clients. The password never leaves
// the service boundary, hashed or not.
type UserResponse struct {
	ID      string `json:"id"`
	Profile string `json:"profile"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:      user.ID,
		Profile: user.Profile,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Phone:   user.Phone,
	}
}

func actorName(r *http.Request) string {
	if actor := auth.ActorFromContext(r.Context()); actor != nil {
		return actor.Name
	}
	return ""
}

// CreateUser creates a new user.
//
// POST /api/user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		httpx.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.Create(r.Context(), req.toModel()).Await(r.Context())
	h.audit.LogUserAction(r.Context(), actorName(r), "create", req.Name, err == nil)
	if err != nil {
		writeOperationError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userModelToResponse(user))
}

// GetUser retrieves a user by name.
//
// GET /api/user/{userName}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")
	if userName == "" {
		httpx.WriteBadRequest(w, "user name is required")
		return
	}

	user, err := h.service.Retrieve(r.Context(), userName).Await(r.Context())
	if err != nil {
		writeOperationError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userModelToResponse(user))
}

// UpdateUser replaces a user record. The body's name must match the path.
//
// PUT /api/user/{userName}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		httpx.WriteBadRequest(w, err.Error())
		return
	}
	if req.Name != userName {
		httpx.WriteForbidden(w, "body name does not match path")
		return
	}

	user, err := h.service.Update(r.Context(), req.toModel()).Await(r.Context())
	h.audit.LogUserAction(r.Context(), actorName(r), "update", req.Name, err == nil)
	if err != nil {
		writeOperationError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userModelToResponse(user))
}

// DeleteUser removes a user by name. Self-deletion is refused by the
// service; deleting an absent user succeeds.
//
// DELETE /api/user/{userName}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")
	if userName == "" {
		httpx.WriteBadRequest(w, "user name is required")
		return
	}

	caller := actorName(r)
	_, err := h.service.Delete(r.Context(), userName, caller).Await(r.Context())
	h.audit.LogUserAction(r.Context(), caller, "delete", userName, err == nil)
	if err != nil {
		writeOperationError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
