package list_availability

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoreservas/reservation-service/internal/domain"
	"github.com/condoreservas/reservation-service/pkg/ptr"
)

type fakeSpaceRepo struct {
	spaces []*domain.Space
	rules  map[int64][]*domain.AvailabilityRule
	addOns map[int64][]*domain.AddOnItem
}

func (f *fakeSpaceRepo) ListActive(_ context.Context) ([]*domain.Space, error) {
	return f.spaces, nil
}

func (f *fakeSpaceRepo) ListRules(_ context.Context, spaceID int64) ([]*domain.AvailabilityRule, error) {
	return f.rules[spaceID], nil
}

func (f *fakeSpaceRepo) ListAddOns(_ context.Context, spaceID int64) ([]*domain.AddOnItem, error) {
	return f.addOns[spaceID], nil
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) ListActiveBetween(_ context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range f.reservations {
		if res.Status != domain.ReservationCancelled && res.Overlaps(from, to) {
			out = append(out, res)
		}
	}
	return out, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func space(id int64, name string) *domain.Space {
	return &domain.Space{
		ID:     id,
		Name:   name,
		TypeID: 1,
		Active: true,
		Type: &domain.SpaceType{
			ID:                 1,
			Name:               "Salão",
			MinDurationMinutes: 60,
			MaxDurationMinutes: 480,
			RequiresPayment:    true,
			ReservationPrice:   decimal.RequireFromString("500.00"),
			Active:             true,
		},
	}
}

func TestExecute_MarksReservedSpaces(t *testing.T) {
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	spaces := &fakeSpaceRepo{
		spaces: []*domain.Space{space(1, "Salão de Festas"), space(2, "Quadra")},
		rules:  map[int64][]*domain.AvailabilityRule{},
		addOns: map[int64][]*domain.AddOnItem{},
	}
	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{{
		SpaceID:  1,
		Status:   domain.ReservationConfirmed,
		StartsAt: monday.Add(14 * time.Hour),
		EndsAt:   monday.Add(18 * time.Hour),
	}}}

	uc := NewUseCase(spaces, reservations, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Spaces, 2)

	byID := make(map[int64]SpaceAvailability)
	for _, s := range resp.Spaces {
		byID[s.ID] = s
	}
	assert.False(t, byID[1].Available)
	assert.True(t, byID[2].Available)
}

func TestExecute_RulesCloseTheDay(t *testing.T) {
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	spaces := &fakeSpaceRepo{
		spaces: []*domain.Space{space(1, "Salão de Festas")},
		rules: map[int64][]*domain.AvailabilityRule{
			1: {{SpaceID: 1, DayOfWeek: ptr.Ptr(1), Available: false}},
		},
		addOns: map[int64][]*domain.AddOnItem{},
	}
	uc := NewUseCase(spaces, &fakeReservationRepo{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Spaces, 1)
	assert.False(t, resp.Spaces[0].Available)

	// Same rules, queried on Tuesday: the rule does not match and the day is open
	resp, err = uc.Execute(context.Background(), &Request{Date: monday.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.True(t, resp.Spaces[0].Available)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	spaces := &fakeSpaceRepo{
		spaces: []*domain.Space{space(1, "Salão de Festas")},
		rules:  map[int64][]*domain.AvailabilityRule{},
		addOns: map[int64][]*domain.AddOnItem{},
	}
	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{{
		SpaceID:  1,
		Status:   domain.ReservationCancelled,
		StartsAt: monday.Add(14 * time.Hour),
		EndsAt:   monday.Add(18 * time.Hour),
	}}}
	uc := NewUseCase(spaces, reservations, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)
	assert.True(t, resp.Spaces[0].Available)
}

func TestExecute_CarriesTypePolicyAndAddOns(t *testing.T) {
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	spaces := &fakeSpaceRepo{
		spaces: []*domain.Space{space(1, "Salão de Festas")},
		rules:  map[int64][]*domain.AvailabilityRule{},
		addOns: map[int64][]*domain.AddOnItem{
			1: {{ID: 7, SpaceID: 1, Name: "Cadeiras", UnitPrice: decimal.RequireFromString("12.50"), TotalQuantity: 50}},
		},
	}
	uc := NewUseCase(spaces, &fakeReservationRepo{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Spaces, 1)

	got := resp.Spaces[0]
	assert.Equal(t, 60, got.MinDurationMinutes)
	assert.True(t, got.RequiresPayment)
	assert.Equal(t, "500.00", got.ReservationPrice.StringFixed(2))
	require.Len(t, got.AddOns, 1)
	assert.Equal(t, "Cadeiras", got.AddOns[0].Name)
}

func TestExecute_MissingDate(t *testing.T) {
	uc := NewUseCase(&fakeSpaceRepo{}, &fakeReservationRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
