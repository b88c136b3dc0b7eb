package list_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// UseCase answers "which spaces are open on this day" for every active
// space: the recurring weekly rules are evaluated for the day and any
// non-cancelled reservation touching the day marks the space taken.
type UseCase struct {
	spaceRepo       SpaceRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewUseCase creates the availability listing use case
func NewUseCase(spaceRepo SpaceRepository, reservationRepo ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		spaceRepo:       spaceRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute builds the availability snapshot for the requested day
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := day.AddDate(0, 0, 1)

	uc.logger.Info("ListAvailability: date=%s", day.Format(domain.DateFormat))

	spaces, err := uc.spaceRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("ListAvailability: failed to list spaces: %v", err)
		return nil, fmt.Errorf("%w: failed to list spaces: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.ListActiveBetween(ctx, day, dayEnd)
	if err != nil {
		uc.logger.Error("ListAvailability: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	reservedSpaces := make(map[int64]bool, len(reservations))
	for _, res := range reservations {
		reservedSpaces[res.SpaceID] = true
	}

	result := make([]SpaceAvailability, 0, len(spaces))
	for _, space := range spaces {
		rules, err := uc.spaceRepo.ListRules(ctx, space.ID)
		if err != nil {
			uc.logger.Error("ListAvailability: failed to list rules for space id=%d: %v", space.ID, err)
			return nil, fmt.Errorf("%w: failed to list rules: %v", ErrInternal, err)
		}

		addOns, err := uc.spaceRepo.ListAddOns(ctx, space.ID)
		if err != nil {
			uc.logger.Error("ListAvailability: failed to list add-ons for space id=%d: %v", space.ID, err)
			return nil, fmt.Errorf("%w: failed to list add-ons: %v", ErrInternal, err)
		}

		available := !reservedSpaces[space.ID] && domain.RulesAllow(rules, day)

		result = append(result, SpaceAvailability{
			ID:                 space.ID,
			Name:               space.Name,
			TypeID:             space.TypeID,
			TypeName:           space.Type.Name,
			Description:        space.Description,
			Capacity:           space.Capacity,
			ImageURL:           space.ImageURL,
			MinDurationMinutes: space.Type.MinDurationMinutes,
			MaxDurationMinutes: space.Type.MaxDurationMinutes,
			RequiresPayment:    space.Type.RequiresPayment,
			ReservationPrice:   space.Type.ReservationPrice,
			Available:          available,
			AddOns:             addOnInfos(addOns),
		})
	}

	uc.logger.Info("ListAvailability: %d spaces evaluated for %s", len(result), day.Format(domain.DateFormat))
	return &Response{Date: day, Spaces: result}, nil
}
