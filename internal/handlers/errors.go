package handlers

import (
	"errors"
	"net/http"

	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/halcyonlabs/userdir/internal/task"
	httpx "github.com/halcyonlabs/userdir/pkg/http"
)

// TranslateError maps a resolved operation error to an HTTP status, error
// code and message. Anything unrecognized degrades to 500 with a generic
// message; raw infrastructure detail never reaches the client.
func TranslateError(err error) (int, string, string) {
	switch {
	case errors.Is(err, models.ErrCreateDenied):
		return http.StatusBadRequest, "create_denied", models.ErrCreateDenied.Error()
	case errors.Is(err, models.ErrUpdateDenied):
		return http.StatusBadRequest, "update_denied", models.ErrUpdateDenied.Error()
	case errors.Is(err, models.ErrConstraint):
		return http.StatusBadRequest, "constraint_violation", models.ErrConstraint.Error()
	case errors.Is(err, models.ErrUpdateNotFound):
		// Both update failures are client errors: the caller supplied a
		// record that cannot be applied.
		return http.StatusBadRequest, "update_not_found", models.ErrUpdateNotFound.Error()
	case errors.Is(err, models.ErrRetrieveNotFound):
		return http.StatusNotFound, "not_found", models.ErrRetrieveNotFound.Error()
	case errors.Is(err, models.ErrDeleteDenied):
		return http.StatusNotFound, "delete_denied", models.ErrDeleteDenied.Error()
	case errors.Is(err, task.ErrPoolStopped):
		return http.StatusServiceUnavailable, "unavailable", "service shutting down"
	default:
		return http.StatusInternalServerError, "internal_error", "internal error"
	}
}

// writeOperationError renders err through the translator.
func writeOperationError(w http.ResponseWriter, err error) {
	status, code, message := TranslateError(err)
	httpx.WriteError(w, status, code, message)
}
