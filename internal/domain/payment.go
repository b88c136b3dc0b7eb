package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// IsValid returns true if the status is one of the known payment statuses
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentConfirmed, PaymentCancelled:
		return true
	}
	return false
}

// Payment is a charge raised against a reservation. At most one payment per
// reservation may ever be confirmed.
type Payment struct {
	ID            int64
	ReservationID int64
	Amount        decimal.Decimal
	Method        string
	Status        PaymentStatus

	// ReferenceCode is the copy-and-paste charge code handed to the resident.
	// It is deterministic from (reservation, timestamp, amount) and is the
	// key external payment events use to find their payment.
	ReferenceCode string
	QRCodeURL     string

	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
