// ================== pkg/errors/errors.go =================
package errors

import "errors"

// Sentinel errors shared across the API. Lower layers wrap them with
// context via fmt.Errorf and %w; handlers map them to HTTP status codes
// with errors.Is.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrStorage      = errors.New("storage failure")
	ErrDuplicate    = errors.New("resource already exists")
)
