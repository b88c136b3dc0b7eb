package create_reservation

import (
	"context"
	"time"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// SpaceRepository resolves the space, its type policy and add-on catalog
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
	ListAddOns(ctx context.Context, spaceID int64) ([]*domain.AddOnItem, error)
}

// UserRepository resolves the requesting resident
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ReservationRepository reads conflicting reservations and persists the new one
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ListActiveBySpaceOverlapping(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// ActivityLogRepository is the best-effort audit sink
type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
}

// TransactionManager serializes the admission decision per space
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (injectable for tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface this use case needs
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
