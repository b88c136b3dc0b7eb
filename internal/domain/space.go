package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpaceType is the policy template shared by spaces of the same kind:
// duration bounds, pricing and whether a paid confirmation is required.
type SpaceType struct {
	ID                 int64
	Name               string
	Description        *string
	MinDurationMinutes int
	MaxDurationMinutes int
	RequiresPayment    bool
	ReservationPrice   decimal.Decimal
	Active             bool
}

// Space is a bookable shared facility instance (party hall, sports court, ...)
type Space struct {
	ID          int64
	Name        string
	TypeID      int64
	Description *string
	Capacity    *int
	ImageURL    *string
	Active      bool

	Type   *SpaceType
	AddOns []*AddOnItem
	Rules  []*AvailabilityRule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddOnItem is a priced extra that can be attached to a reservation of its
// space (chairs, grill kit, sound system, ...). TotalQuantity is the amount
// the condominium owns; it is informational and not reserved per booking.
type AddOnItem struct {
	ID            int64
	SpaceID       int64
	Name          string
	Description   *string
	UnitPrice     decimal.Decimal
	TotalQuantity int
	Active        bool
}

// AvailabilityRule is a recurring weekly open/closed declaration for a space.
// DayOfWeek is 0 (Sunday) through 6 (Saturday); nil means every day.
// StartTime/EndTime bound the rule to a window of the day; evaluation
// currently keys on the day only, the window is informational.
type AvailabilityRule struct {
	ID        int64
	SpaceID   int64
	DayOfWeek *int
	StartTime *string
	EndTime   *string
	Available bool
}

// RulesAllow evaluates a space's recurring rules at instant t.
// A rule matches when its day equals t's weekday or is nil (all days).
// No matching rule means the space is open; otherwise the space is open
// iff at least one matching rule declares it available.
func RulesAllow(rules []*AvailabilityRule, t time.Time) bool {
	day := int(t.Weekday())

	matched := false
	for _, rule := range rules {
		if rule.DayOfWeek != nil && *rule.DayOfWeek != day {
			continue
		}
		if rule.Available {
			return true
		}
		matched = true
	}

	return !matched
}
