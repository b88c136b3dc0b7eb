package list_availability

import (
	"context"
	"time"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// SpaceRepository supplies active spaces, their rules and add-on catalogs
type SpaceRepository interface {
	ListActive(ctx context.Context) ([]*domain.Space, error)
	ListRules(ctx context.Context, spaceID int64) ([]*domain.AvailabilityRule, error)
	ListAddOns(ctx context.Context, spaceID int64) ([]*domain.AddOnItem, error)
}

// ReservationRepository supplies the reservations intersecting the queried day
type ReservationRepository interface {
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error)
}

// Logger is the logging surface this use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
