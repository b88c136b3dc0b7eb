package spaces

import (
	"context"
	"time"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// SpaceRepository reads spaces, their rules and add-on catalogs
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
	ListActive(ctx context.Context) ([]*domain.Space, error)
	ListRules(ctx context.Context, spaceID int64) ([]*domain.AvailabilityRule, error)
	ListAddOns(ctx context.Context, spaceID int64) ([]*domain.AddOnItem, error)
}

// ReservationRepository reads the occupied intervals of a space
type ReservationRepository interface {
	ListActiveBySpaceOverlapping(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// Logger is the logging surface this service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
