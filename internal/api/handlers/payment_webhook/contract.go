package payment_webhook

import (
	"context"

	"github.com/condoreservas/reservation-service/internal/service/payments/models"
)

type PaymentService interface {
	HandleWebhook(ctx context.Context, req *models.WebhookRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
