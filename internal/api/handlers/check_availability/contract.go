package check_availability

import (
	"context"
	"time"

	"github.com/condoreservas/reservation-service/internal/service/spaces/models"
)

type SpaceService interface {
	CheckAvailability(ctx context.Context, spaceID int64, at time.Time) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
