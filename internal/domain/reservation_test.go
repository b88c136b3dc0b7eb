package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatus_IsValid(t *testing.T) {
	assert.True(t, ReservationPending.IsValid())
	assert.True(t, ReservationConfirmed.IsValid())
	assert.True(t, ReservationCancelled.IsValid())
	assert.True(t, ReservationCompleted.IsValid())
	assert.False(t, ReservationStatus("deleted").IsValid())
	assert.False(t, ReservationStatus("").IsValid())
}

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{ReservationPending, ReservationConfirmed, true},
		{ReservationPending, ReservationCancelled, true},
		{ReservationPending, ReservationCompleted, false},
		{ReservationPending, ReservationPending, false},
		{ReservationConfirmed, ReservationCancelled, true},
		{ReservationConfirmed, ReservationCompleted, true},
		{ReservationConfirmed, ReservationPending, false},
		{ReservationCancelled, ReservationPending, false},
		{ReservationCancelled, ReservationConfirmed, false},
		{ReservationCancelled, ReservationCompleted, false},
		{ReservationCompleted, ReservationCancelled, false},
		{ReservationCompleted, ReservationConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"transition %s -> %s", tt.from, tt.to)
	}
}

func TestActiveReservationStatuses_OccupyTheInterval(t *testing.T) {
	assert.NotContains(t, ActiveReservationStatuses, ReservationCancelled)
	assert.ElementsMatch(t,
		[]ReservationStatus{ReservationPending, ReservationConfirmed, ReservationCompleted},
		ActiveReservationStatuses)
}

func TestReservation_Overlaps(t *testing.T) {
	base := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	res := &Reservation{
		StartsAt: base,
		EndsAt:   base.Add(2 * time.Hour),
	}

	// Fully inside
	assert.True(t, res.Overlaps(base.Add(30*time.Minute), base.Add(time.Hour)))
	// Partial overlap at the start
	assert.True(t, res.Overlaps(base.Add(-time.Hour), base.Add(time.Hour)))
	// Partial overlap at the end
	assert.True(t, res.Overlaps(base.Add(time.Hour), base.Add(3*time.Hour)))
	// Containing interval
	assert.True(t, res.Overlaps(base.Add(-time.Hour), base.Add(3*time.Hour)))
	// Identical interval
	assert.True(t, res.Overlaps(base, base.Add(2*time.Hour)))

	// Back-to-back intervals share only a boundary instant
	assert.False(t, res.Overlaps(base.Add(2*time.Hour), base.Add(3*time.Hour)))
	assert.False(t, res.Overlaps(base.Add(-time.Hour), base))
	// Disjoint
	assert.False(t, res.Overlaps(base.Add(5*time.Hour), base.Add(6*time.Hour)))
}

func TestReservation_Covers(t *testing.T) {
	base := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	res := &Reservation{
		StartsAt: base,
		EndsAt:   base.Add(2 * time.Hour),
	}

	assert.True(t, res.Covers(base))
	assert.True(t, res.Covers(base.Add(time.Hour)))
	// The end instant belongs to the next interval
	assert.False(t, res.Covers(base.Add(2*time.Hour)))
	assert.False(t, res.Covers(base.Add(-time.Second)))
}

func TestReservation_IsActive(t *testing.T) {
	assert.True(t, (&Reservation{Status: ReservationPending}).IsActive())
	assert.True(t, (&Reservation{Status: ReservationConfirmed}).IsActive())
	assert.True(t, (&Reservation{Status: ReservationCompleted}).IsActive())
	assert.False(t, (&Reservation{Status: ReservationCancelled}).IsActive())
}

func TestReservation_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Reservation{Status: ReservationPending}).CanBeCancelled())
	assert.True(t, (&Reservation{Status: ReservationConfirmed}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: ReservationCancelled}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: ReservationCompleted}).CanBeCancelled())
}

func TestReservation_DurationMinutes(t *testing.T) {
	base := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	res := &Reservation{StartsAt: base, EndsAt: base.Add(90 * time.Minute)}
	assert.Equal(t, 90, res.DurationMinutes())
}
