package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// SpaceTypeResponse is the policy view of a space type
type SpaceTypeResponse struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        *string         `json:"description,omitempty"`
	MinDurationMinutes int             `json:"minDurationMinutes"`
	MaxDurationMinutes int             `json:"maxDurationMinutes"`
	RequiresPayment    bool            `json:"requiresPayment"`
	ReservationPrice   decimal.Decimal `json:"reservationPrice"`
}

// AddOnResponse is one entry of a space's add-on catalog
type AddOnResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalQuantity int             `json:"totalQuantity"`
}

// RuleResponse is one recurring availability rule
type RuleResponse struct {
	ID        int64   `json:"id"`
	DayOfWeek *int    `json:"dayOfWeek,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Available bool    `json:"available"`
}

// SpaceResponse is the full space view
type SpaceResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	Capacity    *int               `json:"capacity,omitempty"`
	ImageURL    *string            `json:"imageUrl,omitempty"`
	Type        *SpaceTypeResponse `json:"type"`
	AddOns      []AddOnResponse    `json:"addOns"`
	Rules       []RuleResponse     `json:"rules,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// SpaceListResponse wraps a list of spaces
type SpaceListResponse struct {
	Spaces []*SpaceResponse `json:"spaces"`
}

// AvailabilityResponse answers a point-in-time availability check
type AvailabilityResponse struct {
	SpaceID   int64     `json:"spaceId"`
	At        time.Time `json:"at"`
	Available bool      `json:"available"`
}

// FromDomain converts a domain space into the response view
func FromDomain(space *domain.Space) *SpaceResponse {
	resp := &SpaceResponse{
		ID:          space.ID,
		Name:        space.Name,
		Description: space.Description,
		Capacity:    space.Capacity,
		ImageURL:    space.ImageURL,
		AddOns:      make([]AddOnResponse, 0, len(space.AddOns)),
		CreatedAt:   space.CreatedAt,
		UpdatedAt:   space.UpdatedAt,
	}

	if space.Type != nil {
		resp.Type = &SpaceTypeResponse{
			ID:                 space.Type.ID,
			Name:               space.Type.Name,
			Description:        space.Type.Description,
			MinDurationMinutes: space.Type.MinDurationMinutes,
			MaxDurationMinutes: space.Type.MaxDurationMinutes,
			RequiresPayment:    space.Type.RequiresPayment,
			ReservationPrice:   space.Type.ReservationPrice,
		}
	}

	for _, item := range space.AddOns {
		resp.AddOns = append(resp.AddOns, AddOnResponse{
			ID:            item.ID,
			Name:          item.Name,
			Description:   item.Description,
			UnitPrice:     item.UnitPrice,
			TotalQuantity: item.TotalQuantity,
		})
	}

	for _, rule := range space.Rules {
		resp.Rules = append(resp.Rules, RuleResponse{
			ID:        rule.ID,
			DayOfWeek: rule.DayOfWeek,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
			Available: rule.Available,
		})
	}

	return resp
}

// FromDomainList converts a list of domain spaces
func FromDomainList(list []*domain.Space) *SpaceListResponse {
	out := make([]*SpaceResponse, 0, len(list))
	for _, space := range list {
		out = append(out, FromDomain(space))
	}
	return &SpaceListResponse{Spaces: out}
}
