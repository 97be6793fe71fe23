package errors

import "errors"

// Sentinel errors shared across feature services. Repositories translate
// driver errors into these; handlers map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("resource already exists")
)

// Is reports whether err matches one of the sentinels above.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
