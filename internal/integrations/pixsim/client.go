// Package pixsim simulates a PIX payment provider. It generates copy-and-paste
// charge codes and QR image URLs without talking to a real gateway; a real
// provider integration can replace it behind the same interface.
package pixsim

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidCode is returned when a reference code cannot be parsed
var ErrInvalidCode = errors.New("pixsim: invalid reference code")

// Charge is a generated payment charge
type Charge struct {
	Code      string
	QRCodeURL string
}

// Generator produces simulated PIX charges
type Generator struct {
	qrBaseURL string
}

// NewGenerator creates a charge generator. qrBaseURL is the QR-image service
// endpoint the code is appended to.
func NewGenerator(qrBaseURL string) *Generator {
	return &Generator{qrBaseURL: qrBaseURL}
}

// GenerateCharge builds the charge for a reservation. The code is
// deterministic from (reservation, timestamp, amount): the reservation id
// prefix is what the webhook later uses to route the payment event.
func (g *Generator) GenerateCharge(reservationID int64, amount decimal.Decimal, at time.Time) Charge {
	code := fmt.Sprintf("%d_%s_%s",
		reservationID,
		at.Format("20060102150405"),
		strings.ReplaceAll(amount.StringFixed(2), ".", ""),
	)

	return Charge{
		Code:      code,
		QRCodeURL: fmt.Sprintf("%s?size=200x200&data=%s", g.qrBaseURL, url.QueryEscape(code)),
	}
}

// ResolveReservationID extracts the reservation id encoded in a charge code
func (g *Generator) ResolveReservationID(code string) (int64, error) {
	prefix, _, found := strings.Cut(code, "_")
	if !found {
		return 0, ErrInvalidCode
	}

	id, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidCode
	}
	return id, nil
}
