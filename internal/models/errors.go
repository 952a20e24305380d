package models

import "errors"

// Operation outcome categories. Services resolve every failure to one of
// these so callers can match with errors.Is instead of inspecting store or
// driver detail.
var (
	// ErrCreateDenied means the user name is already taken.
	ErrCreateDenied = errors.New("user already exists")

	// ErrRetrieveNotFound means no user carries the requested name.
	ErrRetrieveNotFound = errors.New("user not found")

	// ErrUpdateNotFound means the record to replace does not exist.
	ErrUpdateNotFound = errors.New("user to update not found")

	// ErrUpdateDenied means the presented record does not match the stored
	// one and the replacement was refused.
	ErrUpdateDenied = errors.New("user record mismatch")

	// ErrDeleteDenied means a user tried to delete their own account.
	ErrDeleteDenied = errors.New("cannot delete own account")

	// ErrConstraint means the store rejected a write for violating a
	// uniqueness rule.
	ErrConstraint = errors.New("constraint violation")

	// ErrStoreAccess means the store itself failed.
	ErrStoreAccess = errors.New("store access failure")

	// ErrUnknown wraps faults outside every other category.
	ErrUnknown = errors.New("unknown error")
)

// IsDomainError reports whether err is a deliberate domain outcome rather
// than an infrastructure fault.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrCreateDenied) ||
		errors.Is(err, ErrRetrieveNotFound) ||
		errors.Is(err, ErrUpdateNotFound) ||
		errors.Is(err, ErrUpdateDenied) ||
		errors.Is(err, ErrDeleteDenied)
}
