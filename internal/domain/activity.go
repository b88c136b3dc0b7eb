package domain

import "time"

// Activity log actions
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionCancel  = "cancel"
	ActionConfirm = "confirm"
)

// Activity log entity kinds
const (
	EntityReservation = "reservation"
	EntityPayment     = "payment"
)

// ActivityLog is a fire-and-forget audit fact. Writing one must never fail
// the operation that produced it.
type ActivityLog struct {
	ID          int64
	ActorUserID *int64
	Action      string
	Entity      string
	EntityID    int64
	Description string
	OccurredAt  time.Time
}
