package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// reservationTransitions is the single source of truth for status legality.
// Cancellation is reachable from pending and confirmed; cancelled and
// completed are terminal.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCancelled, ReservationCompleted},
	ReservationCancelled: {},
	ReservationCompleted: {},
}

// IsValid returns true if the status is one of the known reservation statuses
func (s ReservationStatus) IsValid() bool {
	_, ok := reservationTransitions[s]
	return ok
}

// CanTransitionTo returns true if moving from s to next is a legal transition
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation represents a booking of a shared space for a time interval.
// The interval is half-open: [StartsAt, EndsAt).
type Reservation struct {
	ID              int64
	UserID          int64
	SpaceID         int64
	StartsAt        time.Time
	EndsAt          time.Time
	Status          ReservationStatus
	RequiresPayment bool
	TotalPrice      decimal.Decimal
	Notes           *string

	Items []*ReservationItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReservationItem is a priced add-on line attached to a reservation.
// Line items live and die with their reservation.
type ReservationItem struct {
	ID            int64
	ReservationID int64
	AddOnID       int64
	Quantity      int
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
}

// IsActive returns true if the reservation still occupies its interval
func (r *Reservation) IsActive() bool {
	return r.Status != ReservationCancelled
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// Overlaps reports whether the half-open interval [start, end) intersects
// the reservation's interval. Back-to-back intervals do not overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartsAt.Before(end) && r.EndsAt.After(start)
}

// Covers reports whether instant t falls inside the reservation's interval
func (r *Reservation) Covers(t time.Time) bool {
	return !r.StartsAt.After(t) && r.EndsAt.After(t)
}

// DurationMinutes returns the interval length in whole minutes
func (r *Reservation) DurationMinutes() int {
	return int(r.EndsAt.Sub(r.StartsAt).Minutes())
}
