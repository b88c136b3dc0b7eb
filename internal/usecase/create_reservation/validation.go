package create_reservation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// validateRequest checks the request shape before any storage access
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return fmt.Errorf("%w: startsAt and endsAt are required", ErrInvalidInput)
	}
	if !req.StartsAt.Before(req.EndsAt) {
		return ErrInvalidInterval
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}
	for _, addOn := range req.AddOns {
		if addOn.AddOnID <= 0 {
			return fmt.Errorf("%w: addOnID must be positive", ErrInvalidInput)
		}
		if addOn.Quantity <= 0 {
			return fmt.Errorf("%w: add-on quantity must be positive", ErrInvalidInput)
		}
	}
	return nil
}

// findConflict returns the first existing reservation whose interval
// intersects the candidate half-open interval, or nil. Cancelled
// reservations never conflict; back-to-back intervals never conflict.
func findConflict(req *Request, existing []*domain.Reservation) *domain.Reservation {
	for _, res := range existing {
		if !res.IsActive() {
			continue
		}
		if res.Overlaps(req.StartsAt, req.EndsAt) {
			return res
		}
	}
	return nil
}

// validateDuration checks the interval length against the type policy and
// returns it in whole minutes. Both bounds are inclusive.
func validateDuration(spaceType *domain.SpaceType, req *Request) (int, error) {
	minutes := int(req.EndsAt.Sub(req.StartsAt).Minutes())

	if minutes < spaceType.MinDurationMinutes {
		return 0, fmt.Errorf("%w: minimum is %d minutes", ErrDurationTooShort, spaceType.MinDurationMinutes)
	}
	if minutes > spaceType.MaxDurationMinutes {
		return 0, fmt.Errorf("%w: maximum is %d minutes", ErrDurationTooLong, spaceType.MaxDurationMinutes)
	}
	return minutes, nil
}

// priceReservation resolves requested add-ons against the space's catalog and
// computes the grand total: type base price plus unit price times quantity per
// line. All arithmetic is decimal; for a type without payment requirement the
// total is zero and no lines are priced.
func priceReservation(
	spaceType *domain.SpaceType,
	catalog []*domain.AddOnItem,
	requested []AddOnRequest,
) (decimal.Decimal, []*domain.ReservationItem, error) {
	if !spaceType.RequiresPayment {
		return decimal.Zero, nil, nil
	}

	byID := make(map[int64]*domain.AddOnItem, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	total := spaceType.ReservationPrice
	items := make([]*domain.ReservationItem, 0, len(requested))

	for _, req := range requested {
		addOn, ok := byID[req.AddOnID]
		if !ok {
			return decimal.Zero, nil, fmt.Errorf("%w: id=%d", ErrUnknownAddOn, req.AddOnID)
		}

		lineTotal := addOn.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		items = append(items, &domain.ReservationItem{
			AddOnID:   addOn.ID,
			Quantity:  req.Quantity,
			UnitPrice: addOn.UnitPrice,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return total, items, nil
}
