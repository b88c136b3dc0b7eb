package create_payment

import (
	"context"

	"github.com/condoreservas/reservation-service/internal/service/payments/models"
)

type PaymentService interface {
	Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
