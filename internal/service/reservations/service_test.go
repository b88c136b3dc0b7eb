package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoreservas/reservation-service/internal/domain"
	reservationRepo "github.com/condoreservas/reservation-service/internal/infra/storage/reservation"
	"github.com/condoreservas/reservation-service/internal/service/reservations/models"
)

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range f.reservations {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ListBySpace(_ context.Context, spaceID int64) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range f.reservations {
		if res.SpaceID == spaceID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	res, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Status = status
	return nil
}

type fakePaymentRepo struct {
	payments map[int64][]*domain.Payment
}

func (f *fakePaymentRepo) ListByReservation(_ context.Context, reservationID int64) ([]*domain.Payment, error) {
	return f.payments[reservationID], nil
}

type fakeLogRepo struct {
	entries []*domain.ActivityLog
}

func (f *fakeLogRepo) Insert(_ context.Context, entry *domain.ActivityLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService(status domain.ReservationStatus) (*Service, *fakeReservationRepo, *fakeLogRepo) {
	start := time.Date(2026, 9, 5, 14, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			1: {
				ID:         1,
				UserID:     7,
				SpaceID:    2,
				StartsAt:   start,
				EndsAt:     start.Add(2 * time.Hour),
				Status:     status,
				TotalPrice: decimal.Zero,
			},
		},
	}
	payments := &fakePaymentRepo{payments: map[int64][]*domain.Payment{
		1: {{ID: 5, ReservationID: 1, Status: domain.PaymentPending}},
	}}
	logs := &fakeLogRepo{}
	return NewService(repo, payments, logs, noopLogger{}), repo, logs
}

func TestGetByID_IncludesPayments(t *testing.T) {
	svc, _, _ := newService(domain.ReservationPending)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, int64(5), resp.Payments[0].ID)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newService(domain.ReservationPending)

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestUpdateStatus_LegalTransition(t *testing.T) {
	svc, repo, logs := newService(domain.ReservationPending)

	err := svc.UpdateStatus(context.Background(), 1,
		&models.UpdateStatusRequest{ActorUserID: 7, Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationConfirmed, repo.reservations[1].Status)
	assert.Len(t, logs.entries, 1)
}

func TestUpdateStatus_SameStatusIsNoOp(t *testing.T) {
	svc, repo, logs := newService(domain.ReservationConfirmed)

	err := svc.UpdateStatus(context.Background(), 1,
		&models.UpdateStatusRequest{ActorUserID: 7, Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationConfirmed, repo.reservations[1].Status)
	assert.Empty(t, logs.entries)
}

func TestUpdateStatus_IllegalTransitions(t *testing.T) {
	tests := []struct {
		from domain.ReservationStatus
		to   string
	}{
		{domain.ReservationPending, "completed"},
		{domain.ReservationCancelled, "confirmed"},
		{domain.ReservationCancelled, "pending"},
		{domain.ReservationCompleted, "cancelled"},
		{domain.ReservationConfirmed, "pending"},
	}

	for _, tt := range tests {
		svc, repo, _ := newService(tt.from)
		err := svc.UpdateStatus(context.Background(), 1,
			&models.UpdateStatusRequest{ActorUserID: 7, Status: tt.to})
		assert.ErrorIs(t, err, ErrIllegalTransition, "transition %s -> %s", tt.from, tt.to)
		assert.Equal(t, tt.from, repo.reservations[1].Status)
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc, _, _ := newService(domain.ReservationPending)

	err := svc.UpdateStatus(context.Background(), 1,
		&models.UpdateStatusRequest{ActorUserID: 7, Status: "deleted"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel_SoftDeletesByStatus(t *testing.T) {
	svc, repo, logs := newService(domain.ReservationConfirmed)

	err := svc.Cancel(context.Background(), 1, &models.CancelRequest{ActorUserID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationCancelled, repo.reservations[1].Status)
	assert.Len(t, logs.entries, 1)
}

func TestCancel_TerminalStates(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.ReservationCancelled, domain.ReservationCompleted} {
		svc, repo, _ := newService(status)
		err := svc.Cancel(context.Background(), 1, &models.CancelRequest{ActorUserID: 7})
		assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
		assert.Equal(t, status, repo.reservations[1].Status)
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc, _, _ := newService(domain.ReservationPending)

	err := svc.Cancel(context.Background(), 404, &models.CancelRequest{ActorUserID: 7})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
