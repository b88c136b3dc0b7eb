package list_availability

import (
	"github.com/shopspring/decimal"

	"github.com/condoreservas/reservation-service/internal/domain"
	listAvailability "github.com/condoreservas/reservation-service/internal/usecase/list_availability"
)

// AddOnResponse is one catalog add-on of a space
type AddOnResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalQuantity int             `json:"totalQuantity"`
}

// SpaceAvailabilityResponse is one space's availability for the queried day
type SpaceAvailabilityResponse struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	TypeID             int64           `json:"typeId"`
	TypeName           string          `json:"typeName"`
	Description        *string         `json:"description,omitempty"`
	Capacity           *int            `json:"capacity,omitempty"`
	ImageURL           *string         `json:"imageUrl,omitempty"`
	MinDurationMinutes int             `json:"minDurationMinutes"`
	MaxDurationMinutes int             `json:"maxDurationMinutes"`
	RequiresPayment    bool            `json:"requiresPayment"`
	ReservationPrice   decimal.Decimal `json:"reservationPrice"`
	Available          bool            `json:"available"`
	AddOns             []AddOnResponse `json:"addOns"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date   string                      `json:"date"`
	Spaces []SpaceAvailabilityResponse `json:"spaces"`
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *listAvailability.Response) *AvailabilityResponse {
	out := make([]SpaceAvailabilityResponse, 0, len(resp.Spaces))
	for _, space := range resp.Spaces {
		addOns := make([]AddOnResponse, 0, len(space.AddOns))
		for _, item := range space.AddOns {
			addOns = append(addOns, AddOnResponse{
				ID:            item.ID,
				Name:          item.Name,
				Description:   item.Description,
				UnitPrice:     item.UnitPrice,
				TotalQuantity: item.TotalQuantity,
			})
		}

		out = append(out, SpaceAvailabilityResponse{
			ID:                 space.ID,
			Name:               space.Name,
			TypeID:             space.TypeID,
			TypeName:           space.TypeName,
			Description:        space.Description,
			Capacity:           space.Capacity,
			ImageURL:           space.ImageURL,
			MinDurationMinutes: space.MinDurationMinutes,
			MaxDurationMinutes: space.MaxDurationMinutes,
			RequiresPayment:    space.RequiresPayment,
			ReservationPrice:   space.ReservationPrice,
			Available:          space.Available,
			AddOns:             addOns,
		})
	}

	return &AvailabilityResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		Spaces: out,
	}
}
