package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// ErrInvalidStatus is returned when a status string is not a known status
var ErrInvalidStatus = errors.New("invalid reservation status")

// UpdateStatusRequest asks for an administrative status change
type UpdateStatusRequest struct {
	ActorUserID int64  `json:"actorUserId"`
	Status      string `json:"status"`
}

// CancelRequest asks for a reservation cancellation
type CancelRequest struct {
	ActorUserID int64 `json:"actorUserId"`
}

// LineItemResponse is one priced add-on line
type LineItemResponse struct {
	ID        int64           `json:"id"`
	AddOnID   int64           `json:"addOnId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// PaymentResponse is one payment of a reservation
type PaymentResponse struct {
	ID            int64           `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	ReferenceCode string          `json:"referenceCode"`
	QRCodeURL     string          `json:"qrCodeUrl"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ReservationResponse is the full reservation view
type ReservationResponse struct {
	ID              int64              `json:"id"`
	UserID          int64              `json:"userId"`
	SpaceID         int64              `json:"spaceId"`
	StartsAt        time.Time          `json:"startsAt"`
	EndsAt          time.Time          `json:"endsAt"`
	Status          string             `json:"status"`
	RequiresPayment bool               `json:"requiresPayment"`
	TotalPrice      decimal.Decimal    `json:"totalPrice"`
	Notes           *string            `json:"notes,omitempty"`
	Items           []LineItemResponse `json:"items"`
	Payments        []PaymentResponse  `json:"payments,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// ReservationListResponse wraps a list of reservations
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// ToDomainStatus validates and converts a status string
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomain converts a domain reservation into the response view
func FromDomain(res *domain.Reservation) *ReservationResponse {
	items := make([]LineItemResponse, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, LineItemResponse{
			ID:        item.ID,
			AddOnID:   item.AddOnID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}

	return &ReservationResponse{
		ID:              res.ID,
		UserID:          res.UserID,
		SpaceID:         res.SpaceID,
		StartsAt:        res.StartsAt,
		EndsAt:          res.EndsAt,
		Status:          string(res.Status),
		RequiresPayment: res.RequiresPayment,
		TotalPrice:      res.TotalPrice,
		Notes:           res.Notes,
		Items:           items,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}

// FromDomainList converts a list of domain reservations
func FromDomainList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, res := range list {
		out = append(out, FromDomain(res))
	}
	return &ReservationListResponse{Reservations: out}
}

// AttachPayments adds a reservation's payment history to the response
func (r *ReservationResponse) AttachPayments(payments []*domain.Payment) {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentResponse{
			ID:            p.ID,
			Amount:        p.Amount,
			Method:        p.Method,
			Status:        string(p.Status),
			ReferenceCode: p.ReferenceCode,
			QRCodeURL:     p.QRCodeURL,
			PaidAt:        p.PaidAt,
			CreatedAt:     p.CreatedAt,
		})
	}
	r.Payments = out
}
