package get_space_reservations

import (
	"context"

	"github.com/condoreservas/reservation-service/internal/service/reservations/models"
)

type ReservationService interface {
	GetSpaceReservations(ctx context.Context, spaceID int64) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
