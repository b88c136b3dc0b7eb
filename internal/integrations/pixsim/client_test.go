package pixsim

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCharge(t *testing.T) {
	gen := NewGenerator("https://api.qrserver.com/v1/create-qr-code/")
	at := time.Date(2026, 8, 29, 19, 30, 45, 0, time.UTC)

	charge := gen.GenerateCharge(42, decimal.RequireFromString("537.50"), at)

	assert.Equal(t, "42_20260829193045_53750", charge.Code)
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=42_20260829193045_53750",
		charge.QRCodeURL)
}

func TestGenerateCharge_IsDeterministic(t *testing.T) {
	gen := NewGenerator("https://qr.example/")
	at := time.Date(2026, 8, 29, 19, 30, 45, 0, time.UTC)
	amount := decimal.RequireFromString("100.00")

	first := gen.GenerateCharge(7, amount, at)
	second := gen.GenerateCharge(7, amount, at)

	assert.Equal(t, first, second)
}

func TestResolveReservationID(t *testing.T) {
	gen := NewGenerator("https://qr.example/")

	t.Run("round trip", func(t *testing.T) {
		charge := gen.GenerateCharge(42, decimal.RequireFromString("537.50"), time.Now())
		id, err := gen.ResolveReservationID(charge.Code)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("no separator", func(t *testing.T) {
		_, err := gen.ResolveReservationID("garbage")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("non-numeric prefix", func(t *testing.T) {
		_, err := gen.ResolveReservationID("abc_20260829193045_53750")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("non-positive id", func(t *testing.T) {
		_, err := gen.ResolveReservationID("0_20260829193045_53750")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})
}
