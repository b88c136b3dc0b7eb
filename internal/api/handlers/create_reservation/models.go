package create_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	createReservation "github.com/condoreservas/reservation-service/internal/usecase/create_reservation"
)

// AddOnRequest is one requested add-on line
type AddOnRequest struct {
	AddOnID  int64 `json:"addOnId"`
	Quantity int   `json:"quantity"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SpaceID  int64          `json:"spaceId"`
	StartsAt string         `json:"startsAt"` // RFC3339
	EndsAt   string         `json:"endsAt"`   // RFC3339
	Notes    *string        `json:"notes,omitempty"`
	AddOns   []AddOnRequest `json:"addOns,omitempty"`
}

// LineItemResponse is one priced add-on line
type LineItemResponse struct {
	ID        int64           `json:"id"`
	AddOnID   int64           `json:"addOnId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64              `json:"id"`
	UserID          int64              `json:"userId"`
	SpaceID         int64              `json:"spaceId"`
	StartsAt        string             `json:"startsAt"`
	EndsAt          string             `json:"endsAt"`
	Status          string             `json:"status"`
	RequiresPayment bool               `json:"requiresPayment"`
	TotalPrice      decimal.Decimal    `json:"totalPrice"`
	Notes           *string            `json:"notes,omitempty"`
	Items           []LineItemResponse `json:"items"`
	CreatedAt       string             `json:"createdAt"`
	UpdatedAt       string             `json:"updatedAt"`
}

// ToUseCaseRequest parses the timestamps and binds the authenticated user
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, err
	}

	endsAt, err := time.Parse(time.RFC3339, r.EndsAt)
	if err != nil {
		return nil, err
	}

	addOns := make([]createReservation.AddOnRequest, 0, len(r.AddOns))
	for _, a := range r.AddOns {
		addOns = append(addOns, createReservation.AddOnRequest{
			AddOnID:  a.AddOnID,
			Quantity: a.Quantity,
		})
	}

	return &createReservation.Request{
		UserID:   userID,
		SpaceID:  r.SpaceID,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Notes:    r.Notes,
		AddOns:   addOns,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	items := make([]LineItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, LineItemResponse{
			ID:        item.ID,
			AddOnID:   item.AddOnID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}

	return &ReservationResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		SpaceID:         resp.SpaceID,
		StartsAt:        resp.StartsAt.Format(time.RFC3339),
		EndsAt:          resp.EndsAt.Format(time.RFC3339),
		Status:          resp.Status,
		RequiresPayment: resp.RequiresPayment,
		TotalPrice:      resp.TotalPrice,
		Notes:           resp.Notes,
		Items:           items,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
