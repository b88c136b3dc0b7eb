package payments

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrPaymentNotFound is returned when the payment cannot be resolved
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrPaymentNotRequired is returned when the reservation does not require payment
	ErrPaymentNotRequired = errors.New("reservation does not require payment")

	// ErrPaymentAlreadyConfirmed is returned when the reservation already has a
	// confirmed payment
	ErrPaymentAlreadyConfirmed = errors.New("payment already confirmed for this reservation")

	// ErrInvalidStatus is returned for an unknown payment status value
	ErrInvalidStatus = errors.New("invalid payment status")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service failures
	ErrInternal = errors.New("payments service: internal error")
)
