package list_availability

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("list_availability: invalid input data")

	// ErrInternal is returned for internal use case failures
	ErrInternal = errors.New("list_availability: internal error")
)
