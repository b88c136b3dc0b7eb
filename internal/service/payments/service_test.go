package payments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condoreservas/reservation-service/internal/domain"
	paymentRepo "github.com/condoreservas/reservation-service/internal/infra/storage/payment"
	reservationRepo "github.com/condoreservas/reservation-service/internal/infra/storage/reservation"
	"github.com/condoreservas/reservation-service/internal/integrations/pixsim"
	"github.com/condoreservas/reservation-service/internal/service/payments/models"
)

type fakePaymentRepo struct {
	nextID   int64
	payments map[int64]*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[int64]*domain.Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	f.nextID++
	stored := *p
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.payments[stored.ID] = &stored
	return &stored, nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) ListByReservation(_ context.Context, reservationID int64) ([]*domain.Payment, error) {
	out := make([]*domain.Payment, 0)
	for _, p := range f.payments {
		if p.ReservationID == reservationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) GetLatestPendingByReservation(_ context.Context, reservationID int64) (*domain.Payment, error) {
	var latest *domain.Payment
	for _, p := range f.payments {
		if p.ReservationID == reservationID && p.Status == domain.PaymentPending {
			if latest == nil || p.ID > latest.ID {
				latest = p
			}
		}
	}
	if latest == nil {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return latest, nil
}

func (f *fakePaymentRepo) HasConfirmedByReservation(_ context.Context, reservationID int64) (bool, error) {
	for _, p := range f.payments {
		if p.ReservationID == reservationID && p.Status == domain.PaymentConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, id int64, status domain.PaymentStatus, paidAt *time.Time) error {
	p, ok := f.payments[id]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	p.Status = status
	if paidAt != nil {
		p.PaidAt = paidAt
	}
	return nil
}

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	res, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Status = status
	return nil
}

type fakeLogRepo struct {
	entries []*domain.ActivityLog
}

func (f *fakeLogRepo) Insert(_ context.Context, entry *domain.ActivityLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	service      *Service
	payments     *fakePaymentRepo
	reservations *fakeReservationRepo
}

func newFixture() *fixture {
	payments := newFakePaymentRepo()
	reservations := &fakeReservationRepo{
		reservations: map[int64]*domain.Reservation{
			10: {
				ID:              10,
				Status:          domain.ReservationPending,
				RequiresPayment: true,
				TotalPrice:      decimal.RequireFromString("537.50"),
			},
			20: {
				ID:              20,
				Status:          domain.ReservationConfirmed,
				RequiresPayment: false,
			},
		},
	}

	svc := NewService(payments, reservations, pixsim.NewGenerator("https://qr.example/"), &fakeLogRepo{}, noopLogger{})
	return &fixture{service: svc, payments: payments, reservations: reservations}
}

func createReq() *models.CreatePaymentRequest {
	return &models.CreatePaymentRequest{
		ReservationID: 10,
		Amount:        decimal.RequireFromString("537.50"),
		Method:        "pix",
	}
}

func TestCreate_PendingChargeWithReference(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), createReq())
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentPending), resp.Status)
	assert.Equal(t, "537.50", resp.Amount.StringFixed(2))
	assert.True(t, strings.HasPrefix(resp.ReferenceCode, "10_"))
	assert.Contains(t, resp.QRCodeURL, "https://qr.example/")
	assert.Nil(t, resp.PaidAt)
}

func TestCreate_ReservationNotFound(t *testing.T) {
	f := newFixture()

	req := createReq()
	req.ReservationID = 404

	_, err := f.service.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCreate_PaymentNotRequired(t *testing.T) {
	f := newFixture()

	req := createReq()
	req.ReservationID = 20

	_, err := f.service.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrPaymentNotRequired)
}

func TestCreate_RejectsSecondChargeAfterConfirmation(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.NoError(t, f.service.ApplyStatus(context.Background(), resp.ID,
		&models.UpdateStatusRequest{Status: string(domain.PaymentConfirmed)}))

	_, err = f.service.Create(context.Background(), createReq())
	assert.ErrorIs(t, err, ErrPaymentAlreadyConfirmed)
}

func TestApplyStatus_ConfirmMovesReservation(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), createReq())
	require.NoError(t, err)

	err = f.service.ApplyStatus(context.Background(), resp.ID,
		&models.UpdateStatusRequest{Status: string(domain.PaymentConfirmed)})
	require.NoError(t, err)

	payment := f.payments.payments[resp.ID]
	assert.Equal(t, domain.PaymentConfirmed, payment.Status)
	assert.NotNil(t, payment.PaidAt)
	assert.Equal(t, domain.ReservationConfirmed, f.reservations.reservations[10].Status)
}

func TestApplyStatus_ConfirmTwiceIsNoOp(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), createReq())
	require.NoError(t, err)

	confirm := &models.UpdateStatusRequest{Status: string(domain.PaymentConfirmed)}
	require.NoError(t, f.service.ApplyStatus(context.Background(), resp.ID, confirm))
	firstPaidAt := *f.payments.payments[resp.ID].PaidAt

	require.NoError(t, f.service.ApplyStatus(context.Background(), resp.ID, confirm))

	assert.Equal(t, firstPaidAt, *f.payments.payments[resp.ID].PaidAt)
	assert.Equal(t, domain.ReservationConfirmed, f.reservations.reservations[10].Status)
}

func TestApplyStatus_CancelledReservationStaysCancelled(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), createReq())
	require.NoError(t, err)

	// Administrative cancellation lands before the payment event
	f.reservations.reservations[10].Status = domain.ReservationCancelled

	err = f.service.ApplyStatus(context.Background(), resp.ID,
		&models.UpdateStatusRequest{Status: string(domain.PaymentConfirmed)})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentConfirmed, f.payments.payments[resp.ID].Status)
	assert.Equal(t, domain.ReservationCancelled, f.reservations.reservations[10].Status)
}

func TestApplyStatus_InvalidStatus(t *testing.T) {
	f := newFixture()

	err := f.service.ApplyStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "paid"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplyStatus_NotFound(t *testing.T) {
	f := newFixture()

	err := f.service.ApplyStatus(context.Background(), 404,
		&models.UpdateStatusRequest{Status: string(domain.PaymentCancelled)})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestHandleWebhook_ConfirmsByReferenceCode(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), createReq())
	require.NoError(t, err)

	err = f.service.HandleWebhook(context.Background(), &models.WebhookRequest{
		ReferenceCode: resp.ReferenceCode,
		Status:        string(domain.PaymentConfirmed),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentConfirmed, f.payments.payments[resp.ID].Status)
	assert.Equal(t, domain.ReservationConfirmed, f.reservations.reservations[10].Status)
}

func TestHandleWebhook_DuplicateDeliveryConverges(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), createReq())
	require.NoError(t, err)

	event := &models.WebhookRequest{
		ReferenceCode: resp.ReferenceCode,
		Status:        string(domain.PaymentConfirmed),
	}
	require.NoError(t, f.service.HandleWebhook(context.Background(), event))

	// Second delivery finds no pending payment; still a success
	assert.NoError(t, f.service.HandleWebhook(context.Background(), event))
	assert.Equal(t, domain.ReservationConfirmed, f.reservations.reservations[10].Status)
}

func TestHandleWebhook_InvalidCode(t *testing.T) {
	f := newFixture()

	err := f.service.HandleWebhook(context.Background(), &models.WebhookRequest{
		ReferenceCode: "garbage",
		Status:        string(domain.PaymentConfirmed),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHandleWebhook_NoPendingPayment(t *testing.T) {
	f := newFixture()

	err := f.service.HandleWebhook(context.Background(), &models.WebhookRequest{
		ReferenceCode: "10_20260829120000_53750",
		Status:        string(domain.PaymentConfirmed),
	})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
