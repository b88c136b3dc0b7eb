package spaces

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoreservas/reservation-service/internal/domain"
	spaceRepo "github.com/condoreservas/reservation-service/internal/infra/storage/space"
	"github.com/condoreservas/reservation-service/pkg/ptr"
)

type fakeSpaceRepo struct {
	spaces map[int64]*domain.Space
	rules  map[int64][]*domain.AvailabilityRule
	addOns map[int64][]*domain.AddOnItem
}

func (f *fakeSpaceRepo) GetByID(_ context.Context, id int64) (*domain.Space, error) {
	space, ok := f.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	return space, nil
}

func (f *fakeSpaceRepo) ListActive(_ context.Context) ([]*domain.Space, error) {
	out := make([]*domain.Space, 0)
	for _, space := range f.spaces {
		if space.Active {
			out = append(out, space)
		}
	}
	return out, nil
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

func (f *fakeReservationRepo) ListActiveBySpaceOverlapping(_ context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range f.reservations {
		if res.SpaceID == spaceID && res.Status != domain.ReservationCancelled && res.Overlaps(from, to) {
			out = append(out, res)
		}
	}
	return out, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newFixture() (*Service, *fakeSpaceRepo, *fakeReservationRepo) {
	spaces := &fakeSpaceRepo{
		spaces: map[int64]*domain.Space{
			1: {
				ID:     1,
				Name:   "Churrasqueira",
				Active: true,
				Type:   &domain.SpaceType{ID: 1, Name: "Área Gourmet", Active: true, ReservationPrice: decimal.Zero},
			},
		},
		rules:  map[int64][]*domain.AvailabilityRule{},
		addOns: map[int64][]*domain.AddOnItem{},
	}
	reservations := &fakeReservationRepo{}
	return NewService(spaces, reservations, noopLogger{}), spaces, reservations
}

func TestGetByID_ReturnsRulesAndAddOns(t *testing.T) {
	svc, repo, _ := newFixture()
	repo.rules[1] = []*domain.AvailabilityRule{{ID: 3, SpaceID: 1, DayOfWeek: ptr.Ptr(1), Available: false}}
	repo.addOns[1] = []*domain.AddOnItem{{ID: 4, SpaceID: 1, Name: "Carvão", UnitPrice: decimal.RequireFromString("25.00")}}

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Churrasqueira", resp.Name)
	require.Len(t, resp.Rules, 1)
	assert.False(t, resp.Rules[0].Available)
	require.Len(t, resp.AddOns, 1)
	assert.Equal(t, "Carvão", resp.AddOns[0].Name)
}

func TestGetByID_InactiveIsNotFound(t *testing.T) {
	svc, repo, _ := newFixture()
	repo.spaces[1].Active = false

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestCheckAvailability(t *testing.T) {
	monday := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	t.Run("open with empty agenda", func(t *testing.T) {
		svc, _, _ := newFixture()
		resp, err := svc.CheckAvailability(context.Background(), 1, monday)
		require.NoError(t, err)
		assert.True(t, resp.Available)
	})

	t.Run("closed by rule", func(t *testing.T) {
		svc, repo, _ := newFixture()
		repo.rules[1] = []*domain.AvailabilityRule{{SpaceID: 1, DayOfWeek: ptr.Ptr(1), Available: false}}

		resp, err := svc.CheckAvailability(context.Background(), 1, monday)
		require.NoError(t, err)
		assert.False(t, resp.Available)
	})

	t.Run("occupied by a covering reservation", func(t *testing.T) {
		svc, _, reservations := newFixture()
		reservations.reservations = []*domain.Reservation{{
			SpaceID:  1,
			Status:   domain.ReservationConfirmed,
			StartsAt: monday.Add(-time.Hour),
			EndsAt:   monday.Add(time.Hour),
		}}

		resp, err := svc.CheckAvailability(context.Background(), 1, monday)
		require.NoError(t, err)
		assert.False(t, resp.Available)
	})

	t.Run("a reservation ending at the instant does not occupy it", func(t *testing.T) {
		svc, _, reservations := newFixture()
		reservations.reservations = []*domain.Reservation{{
			SpaceID:  1,
			Status:   domain.ReservationConfirmed,
			StartsAt: monday.Add(-2 * time.Hour),
			EndsAt:   monday,
		}}

		resp, err := svc.CheckAvailability(context.Background(), 1, monday)
		require.NoError(t, err)
		assert.True(t, resp.Available)
	})

	t.Run("cancelled reservation does not occupy", func(t *testing.T) {
		svc, _, reservations := newFixture()
		reservations.reservations = []*domain.Reservation{{
			SpaceID:  1,
			Status:   domain.ReservationCancelled,
			StartsAt: monday.Add(-time.Hour),
			EndsAt:   monday.Add(time.Hour),
		}}

		resp, err := svc.CheckAvailability(context.Background(), 1, monday)
		require.NoError(t, err)
		assert.True(t, resp.Available)
	})
}
