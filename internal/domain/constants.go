package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength = 500
)

// ActiveReservationStatuses are the statuses that keep a reservation's
// interval occupied. Used when filtering for conflict detection.
var ActiveReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationCompleted,
}
