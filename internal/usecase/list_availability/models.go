package list_availability

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/condoreservas/reservation-service/internal/domain"
)

// Request asks for the availability of every active space on one day
type Request struct {
	Date time.Time
}

// AddOnInfo describes one catalog add-on of a space
type AddOnInfo struct {
	ID            int64
	Name          string
	Description   *string
	UnitPrice     decimal.Decimal
	TotalQuantity int
}

// SpaceAvailability is one space's availability snapshot for the queried day
type SpaceAvailability struct {
	ID                 int64
	Name               string
	TypeID             int64
	TypeName           string
	Description        *string
	Capacity           *int
	ImageURL           *string
	MinDurationMinutes int
	MaxDurationMinutes int
	RequiresPayment    bool
	ReservationPrice   decimal.Decimal
	Available          bool
	AddOns             []AddOnInfo
}

// Response is the availability listing for one day
type Response struct {
	Date   time.Time
	Spaces []SpaceAvailability
}

func addOnInfos(items []*domain.AddOnItem) []AddOnInfo {
	infos := make([]AddOnInfo, 0, len(items))
	for _, item := range items {
		infos = append(infos, AddOnInfo{
			ID:            item.ID,
			Name:          item.Name,
			Description:   item.Description,
			UnitPrice:     item.UnitPrice,
			TotalQuantity: item.TotalQuantity,
		})
	}
	return infos
}
