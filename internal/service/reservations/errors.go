package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidStatus is returned for an unknown status value
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrIllegalTransition is returned when the requested status change is not
	// allowed by the reservation state machine
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrCannotCancel is returned when the reservation is already terminal
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service failures
	ErrInternal = errors.New("reservations service: internal error")
)
