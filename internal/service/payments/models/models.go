package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// CreatePaymentRequest raises a charge against a reservation
type CreatePaymentRequest struct {
	ReservationID int64           `json:"reservationId"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
}

// UpdateStatusRequest applies a payment-status transition by payment id
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// WebhookRequest is the inbound external payment event, keyed by the charge
// reference code
type WebhookRequest struct {
	ReferenceCode string `json:"referenceCode"`
	Status        string `json:"status"`
}

// PaymentResponse is the payment view returned to callers
type PaymentResponse struct {
	ID            int64           `json:"id"`
	ReservationID int64           `json:"reservationId"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	ReferenceCode string          `json:"referenceCode"`
	QRCodeURL     string          `json:"qrCodeUrl"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// FromDomain converts a domain payment into the response view
func FromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        p.Method,
		Status:        string(p.Status),
		ReferenceCode: p.ReferenceCode,
		QRCodeURL:     p.QRCodeURL,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
