package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/halcyonlabs/userdir/internal/task"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"create denied", models.ErrCreateDenied, http.StatusBadRequest, "create_denied"},
		{"update denied", models.ErrUpdateDenied, http.StatusBadRequest, "update_denied"},
		{"update not found", models.ErrUpdateNotFound, http.StatusBadRequest, "update_not_found"},
		{"constraint", models.ErrConstraint, http.StatusBadRequest, "constraint_violation"},
		{"retrieve not found", models.ErrRetrieveNotFound, http.StatusNotFound, "not_found"},
		{"delete denied", models.ErrDeleteDenied, http.StatusNotFound, "delete_denied"},
		{"pool stopped", task.ErrPoolStopped, http.StatusServiceUnavailable, "unavailable"},
		{"unknown", models.ErrUnknown, http.StatusInternalServerError, "internal_error"},
		{"store access", models.ErrStoreAccess, http.StatusInternalServerError, "internal_error"},
		{"arbitrary", errors.New("wire torn"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := TranslateError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestTranslateError_WrappedSentinelsMatch(t *testing.T) {
	wrapped := fmt.Errorf("saving user: %w", models.ErrConstraint)

	status, code, _ := TranslateError(wrapped)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "constraint_violation", code)
}

func TestTranslateError_NoInternalDetailLeaks(t *testing.T) {
	_, _, message := TranslateError(errors.New("pq: connection refused on 10.0.0.5"))

	assert.NotContains(t, message, "10.0.0.5")
	assert.Equal(t, "internal error", message)
}
