package payments

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/condoreservas/reservation-service/internal/domain"
	"github.com/condoreservas/reservation-service/internal/integrations/pixsim"
)

// PaymentRepository is the storage surface this service needs
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByReservation(ctx context.Context, reservationID int64) ([]*domain.Payment, error)
	GetLatestPendingByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error)
	HasConfirmedByReservation(ctx context.Context, reservationID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus, paidAt *time.Time) error
}

// ReservationRepository resolves the paying reservation and moves it to
// confirmed when its payment lands
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// ChargeGenerator produces the payment reference behind an interface so a
// real provider can replace the simulation
type ChargeGenerator interface {
	GenerateCharge(reservationID int64, amount decimal.Decimal, at time.Time) pixsim.Charge
	ResolveReservationID(code string) (int64, error)
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
