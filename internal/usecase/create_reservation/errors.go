package create_reservation

import "errors"

var (
	// ErrSpaceNotFound is returned when the space is missing or inactive
	ErrSpaceNotFound = errors.New("create_reservation: space not found")

	// ErrUserNotFound is returned when the requesting user is missing or inactive
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrSlotConflict is returned when the interval overlaps an existing reservation
	ErrSlotConflict = errors.New("create_reservation: time slot already reserved")

	// ErrInvalidInterval is returned when the interval is malformed (start >= end)
	ErrInvalidInterval = errors.New("create_reservation: invalid time interval")

	// ErrDurationTooShort is returned when the interval is below the type's minimum
	ErrDurationTooShort = errors.New("create_reservation: duration below minimum")

	// ErrDurationTooLong is returned when the interval exceeds the type's maximum
	ErrDurationTooLong = errors.New("create_reservation: duration above maximum")

	// ErrUnknownAddOn is returned when a requested add-on is not in the space's catalog
	ErrUnknownAddOn = errors.New("create_reservation: unknown add-on item")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal is returned for internal use case failures
	ErrInternal = errors.New("create_reservation: internal error")
)
