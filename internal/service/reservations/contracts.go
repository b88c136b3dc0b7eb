package reservations

import (
	"context"
	"time"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// ReservationRepository is the storage surface this service needs
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error)
	ListBySpace(ctx context.Context, spaceID int64) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// PaymentRepository supplies a reservation's payment history
type PaymentRepository interface {
	ListByReservation(ctx context.Context, reservationID int64) ([]*domain.Payment, error)
}

// ActivityLogRepository is the best-effort audit sink
type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
}

// TimeProvider supplies the current time (injectable for tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface this service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
