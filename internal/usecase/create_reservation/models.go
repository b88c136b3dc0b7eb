package create_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// AddOnRequest is one requested add-on line
type AddOnRequest struct {
	AddOnID  int64
	Quantity int
}

// Request is the admission request for a new reservation
type Request struct {
	UserID   int64
	SpaceID  int64
	StartsAt time.Time
	EndsAt   time.Time
	Notes    *string
	AddOns   []AddOnRequest
}

// LineItem is one priced add-on line of the response
type LineItem struct {
	ID        int64
	AddOnID   int64
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Response is the created reservation
type Response struct {
	ID              int64
	UserID          int64
	SpaceID         int64
	StartsAt        time.Time
	EndsAt          time.Time
	Status          string
	RequiresPayment bool
	TotalPrice      decimal.Decimal
	Notes           *string
	Items           []LineItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func fromDomain(res *domain.Reservation) *Response {
	items := make([]LineItem, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, LineItem{
			ID:        item.ID,
			AddOnID:   item.AddOnID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}

	return &Response{
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
