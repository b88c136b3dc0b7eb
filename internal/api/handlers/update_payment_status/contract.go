package update_payment_status

import (
	"context"

	"github.com/condoreservas/reservation-service/internal/service/payments/models"
)

type PaymentService interface {
	ApplyStatus(ctx context.Context, paymentID int64, req *models.UpdateStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
