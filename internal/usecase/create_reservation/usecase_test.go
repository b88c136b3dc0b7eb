package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoreservas/reservation-service/internal/domain"
	spaceRepo "github.com/condoreservas/reservation-service/internal/infra/storage/space"
	userRepo "github.com/condoreservas/reservation-service/internal/infra/storage/user"
	"github.com/condoreservas/reservation-service/pkg/txmanager"
)

type fakeSpaceRepo struct {
	spaces map[int64]*domain.Space
	addOns map[int64][]*domain.AddOnItem
}

func (f *fakeSpaceRepo) GetByID(_ context.Context, id int64) (*domain.Space, error) {
	space, ok := f.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	return space, nil
}

func (f *fakeSpaceRepo) ListAddOns(_ context.Context, spaceID int64) ([]*domain.AddOnItem, error) {
	return f.addOns[spaceID], nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return user, nil
}

type fakeReservationRepo struct {
	nextID   int64
	existing []*domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	f.existing = append(f.existing, res)
	return res, nil
}

func (f *fakeReservationRepo) ListActiveBySpaceOverlapping(_ context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range f.existing {
		if res.SpaceID == spaceID && res.Status != domain.ReservationCancelled && res.Overlaps(from, to) {
			out = append(out, res)
		}
	}
	return out, nil
}

type fakeLogRepo struct {
	entries []*domain.ActivityLog
}

func (f *fakeLogRepo) Insert(_ context.Context, entry *domain.ActivityLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// serialTxManager runs transactions one at a time, the way SERIALIZABLE
// isolation resolves two admissions touching the same rows.
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// abortingTxManager lets fn finish and then fails the commit the way the
// database aborts the loser of a serialization race.
type abortingTxManager struct{}

func (abortingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("%w: pq: could not serialize access due to read/write dependencies among transactions", txmanager.ErrSerialization)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	useCase     *UseCase
	spaces      *fakeSpaceRepo
	reservation *fakeReservationRepo
	logs        *fakeLogRepo
}

func newFixture(requiresPayment bool) *fixture {
	spaces := &fakeSpaceRepo{
		spaces: map[int64]*domain.Space{
			2: {
				ID:     2,
				Name:   "Salão de Festas",
				Active: true,
				Type: &domain.SpaceType{
					ID:                 1,
					MinDurationMinutes: 60,
					MaxDurationMinutes: 480,
					RequiresPayment:    requiresPayment,
					ReservationPrice:   decimal.RequireFromString("500.00"),
					Active:             true,
				},
			},
		},
		addOns: map[int64][]*domain.AddOnItem{
			2: {{ID: 7, SpaceID: 2, Name: "Cadeiras", UnitPrice: decimal.RequireFromString("12.50"), Active: true}},
		},
	}
	users := &fakeUserRepo{users: map[int64]*domain.User{1: {ID: 1, Active: true}}}
	reservation := &fakeReservationRepo{}
	logs := &fakeLogRepo{}

	return &fixture{
		useCase:     NewUseCase(spaces, users, reservation, logs, &fakeTxManager{}, noopLogger{}),
		spaces:      spaces,
		reservation: reservation,
		logs:        logs,
	}
}

func TestExecute_FreeSpaceConfirmsImmediately(t *testing.T) {
	f := newFixture(false)

	resp, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.ReservationConfirmed), resp.Status)
	assert.False(t, resp.RequiresPayment)
	assert.True(t, resp.TotalPrice.IsZero())
	assert.Empty(t, resp.Items)
	assert.Len(t, f.logs.entries, 1)
}

func TestExecute_PaidSpaceStaysPendingWithTotal(t *testing.T) {
	f := newFixture(true)

	req := validRequest()
	req.AddOns = []AddOnRequest{{AddOnID: 7, Quantity: 3}}

	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, string(domain.ReservationPending), resp.Status)
	assert.True(t, resp.RequiresPayment)
	assert.Equal(t, "537.50", resp.TotalPrice.StringFixed(2))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(7), resp.Items[0].AddOnID)
	assert.Equal(t, "37.50", resp.Items[0].LineTotal.StringFixed(2))
}

func TestExecute_OverlapRejected(t *testing.T) {
	f := newFixture(false)

	_, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Second request shifted one hour into the first one
	req := validRequest()
	req.StartsAt = req.StartsAt.Add(time.Hour)
	req.EndsAt = req.EndsAt.Add(time.Hour)

	_, err = f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ConcurrentRequestsAdmitExactlyOne(t *testing.T) {
	f := newFixture(false)
	f.useCase.txManager = &serialTxManager{}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.useCase.Execute(context.Background(), validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var admitted, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, ErrSlotConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, admitted)
	assert.Equal(t, 1, conflicted)
	assert.Len(t, f.reservation.existing, 1)
}

func TestExecute_SerializationAbortIsAConflict(t *testing.T) {
	f := newFixture(false)
	f.useCase.txManager = abortingTxManager{}

	_, err := f.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_BackToBackAdmitted(t *testing.T) {
	f := newFixture(false)

	first := validRequest()
	_, err := f.useCase.Execute(context.Background(), first)
	require.NoError(t, err)

	second := validRequest()
	second.StartsAt = first.EndsAt
	second.EndsAt = first.EndsAt.Add(2 * time.Hour)

	_, err = f.useCase.Execute(context.Background(), second)
	assert.NoError(t, err)
}

func TestExecute_CancelledReservationFreesTheSlot(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	f.reservation.existing = []*domain.Reservation{{
		ID:       99,
		SpaceID:  req.SpaceID,
		Status:   domain.ReservationCancelled,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}}

	_, err := f.useCase.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_SpaceNotFound(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	req.SpaceID = 404

	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestExecute_InactiveSpaceNotFound(t *testing.T) {
	f := newFixture(false)
	f.spaces.spaces[2].Active = false

	_, err := f.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestExecute_UserNotFound(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	req.UserID = 404

	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_DurationOutOfBounds(t *testing.T) {
	f := newFixture(false)

	req := validRequest()
	req.EndsAt = req.StartsAt.Add(30 * time.Minute)
	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDurationTooShort)

	req = validRequest()
	req.EndsAt = req.StartsAt.Add(9 * time.Hour)
	_, err = f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDurationTooLong)
}

func TestExecute_UnknownAddOnRejected(t *testing.T) {
	f := newFixture(true)

	req := validRequest()
	req.AddOns = []AddOnRequest{{AddOnID: 123, Quantity: 1}}

	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownAddOn)
}
