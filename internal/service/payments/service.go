package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/condoreservas/reservation-service/internal/domain"
	paymentRepo "github.com/condoreservas/reservation-service/internal/infra/storage/payment"
	reservationRepo "github.com/condoreservas/reservation-service/internal/infra/storage/reservation"
	"github.com/condoreservas/reservation-service/internal/service/payments/models"
)

// Service tracks a reservation's payment requirement and reacts to
// payment-status transitions. Confirmation is idempotent: the same event
// delivered twice leaves the same end state, whether it arrives through the
// explicit status route or the webhook.
type Service struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	chargeGen       ChargeGenerator
	logRepo         ActivityLogRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates the payments service
func NewService(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	chargeGen ChargeGenerator,
	logRepo ActivityLogRepository,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		chargeGen:       chargeGen,
		logRepo:         logRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Create raises a pending charge against a reservation. Only reservations
// whose type requires payment accept one, and a reservation with a confirmed
// payment never accepts another.
func (s *Service) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("CreatePayment: reservation=%d, amount=%s, method=%s",
		req.ReservationID, req.Amount.StringFixed(2), req.Method)

	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if req.Method == "" {
		return nil, fmt.Errorf("%w: method is required", ErrInvalidInput)
	}

	res, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("CreatePayment: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("CreatePayment: repository error for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	if !res.RequiresPayment {
		s.logger.Warn("CreatePayment: reservation id=%d does not require payment", req.ReservationID)
		return nil, ErrPaymentNotRequired
	}

	confirmed, err := s.paymentRepo.HasConfirmedByReservation(ctx, req.ReservationID)
	if err != nil {
		s.logger.Error("CreatePayment: failed to check confirmed payments for reservation id=%d: %v",
			req.ReservationID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}
	if confirmed {
		s.logger.Warn("CreatePayment: reservation id=%d already has a confirmed payment", req.ReservationID)
		return nil, ErrPaymentAlreadyConfirmed
	}

	charge := s.chargeGen.GenerateCharge(req.ReservationID, req.Amount, s.timeProvider.Now())

	created, err := s.paymentRepo.Create(ctx, &domain.Payment{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        domain.PaymentPending,
		ReferenceCode: charge.Code,
		QRCodeURL:     charge.QRCodeURL,
	})
	if err != nil {
		s.logger.Error("CreatePayment: failed to create payment for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.recordActivity(ctx, domain.ActionCreate, created.ID,
		fmt.Sprintf("Payment of %s created for reservation %d", req.Amount.StringFixed(2), req.ReservationID))

	s.logger.Info("CreatePayment: payment id=%d created with reference=%s", created.ID, created.ReferenceCode)
	return models.FromDomain(created), nil
}

// GetByID returns one payment
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PaymentResponse, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByID: repository error for payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomain(p), nil
}

// ApplyStatus applies a payment-status transition by payment id
func (s *Service) ApplyStatus(ctx context.Context, paymentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("ApplyStatus: payment id=%d to status=%s", paymentID, req.Status)

	status := domain.PaymentStatus(req.Status)
	if !status.IsValid() {
		s.logger.Warn("ApplyStatus: invalid status=%q for payment id=%d", req.Status, paymentID)
		return ErrInvalidStatus
	}

	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("ApplyStatus: payment id=%d not found", paymentID)
			return ErrPaymentNotFound
		}
		s.logger.Error("ApplyStatus: repository error for payment id=%d: %v", paymentID, err)
		return fmt.Errorf("%w: ApplyStatus - repository error: %v", ErrInternal, err)
	}

	return s.apply(ctx, p, status)
}

// HandleWebhook applies a payment-status transition delivered by the external
// provider, keyed by the charge reference code. Must converge on the same
// state as ApplyStatus under at-least-once delivery.
func (s *Service) HandleWebhook(ctx context.Context, req *models.WebhookRequest) error {
	s.logger.Info("HandleWebhook: reference=%s, status=%s", req.ReferenceCode, req.Status)

	status := domain.PaymentStatus(req.Status)
	if !status.IsValid() {
		s.logger.Warn("HandleWebhook: invalid status=%q", req.Status)
		return ErrInvalidStatus
	}

	reservationID, err := s.chargeGen.ResolveReservationID(req.ReferenceCode)
	if err != nil {
		s.logger.Warn("HandleWebhook: unresolvable reference=%q: %v", req.ReferenceCode, err)
		return fmt.Errorf("%w: invalid reference code", ErrInvalidInput)
	}

	p, err := s.paymentRepo.GetLatestPendingByReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			// A duplicate confirmation delivery finds no pending payment
			// because the first delivery already confirmed it. Converge.
			if status == domain.PaymentConfirmed {
				confirmed, checkErr := s.paymentRepo.HasConfirmedByReservation(ctx, reservationID)
				if checkErr == nil && confirmed {
					s.logger.Info("HandleWebhook: reservation id=%d already confirmed, nothing to do", reservationID)
					return nil
				}
			}
			s.logger.Warn("HandleWebhook: no pending payment for reservation id=%d", reservationID)
			return ErrPaymentNotFound
		}
		s.logger.Error("HandleWebhook: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: HandleWebhook - repository error: %v", ErrInternal, err)
	}

	return s.apply(ctx, p, status)
}

// apply routes a validated status transition. Confirmation runs the full
// confirm path; anything else touches the payment only.
func (s *Service) apply(ctx context.Context, p *domain.Payment, status domain.PaymentStatus) error {
	if status == domain.PaymentConfirmed {
		return s.confirm(ctx, p)
	}

	if p.Status == status {
		return nil
	}

	if err := s.paymentRepo.UpdateStatus(ctx, p.ID, status, nil); err != nil {
		s.logger.Error("apply: failed to update payment id=%d to status=%s: %v", p.ID, status, err)
		return fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
	}

	s.logger.Info("apply: payment id=%d moved to status=%s", p.ID, status)
	return nil
}

// confirm marks the payment paid and moves its reservation from pending to
// confirmed. Re-confirming is a no-op; an administratively cancelled
// reservation stays cancelled, the cancel wins over a late payment event.
func (s *Service) confirm(ctx context.Context, p *domain.Payment) error {
	if p.Status == domain.PaymentConfirmed {
		s.logger.Info("confirm: payment id=%d already confirmed, nothing to do", p.ID)
		return nil
	}

	alreadyConfirmed, err := s.paymentRepo.HasConfirmedByReservation(ctx, p.ReservationID)
	if err != nil {
		s.logger.Error("confirm: failed to check confirmed payments for reservation id=%d: %v", p.ReservationID, err)
		return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	if alreadyConfirmed {
		s.logger.Warn("confirm: reservation id=%d already has a different confirmed payment", p.ReservationID)
		return ErrPaymentAlreadyConfirmed
	}

	paidAt := s.timeProvider.Now()
	if err := s.paymentRepo.UpdateStatus(ctx, p.ID, domain.PaymentConfirmed, &paidAt); err != nil {
		s.logger.Error("confirm: failed to confirm payment id=%d: %v", p.ID, err)
		return fmt.Errorf("%w: failed to confirm payment: %v", ErrInternal, err)
	}

	res, err := s.reservationRepo.GetByID(ctx, p.ReservationID)
	if err != nil {
		s.logger.Error("confirm: failed to get reservation id=%d: %v", p.ReservationID, err)
		return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	switch res.Status {
	case domain.ReservationPending:
		if err := s.reservationRepo.UpdateStatus(ctx, res.ID, domain.ReservationConfirmed); err != nil {
			s.logger.Error("confirm: failed to confirm reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to confirm reservation: %v", ErrInternal, err)
		}
		s.logger.Info("confirm: reservation id=%d confirmed by payment id=%d", res.ID, p.ID)
	case domain.ReservationCancelled:
		s.logger.Warn("confirm: reservation id=%d is cancelled, payment id=%d recorded but reservation stays cancelled",
			res.ID, p.ID)
	}

	s.recordActivity(ctx, domain.ActionConfirm, p.ID,
		fmt.Sprintf("Payment confirmed for reservation %d", p.ReservationID))

	return nil
}

func (s *Service) recordActivity(ctx context.Context, action string, paymentID int64, description string) {
	entry := &domain.ActivityLog{
		Action:      action,
		Entity:      domain.EntityPayment,
		EntityID:    paymentID,
		Description: description,
		OccurredAt:  s.timeProvider.Now(),
	}

	if err := s.logRepo.Insert(ctx, entry); err != nil {
		s.logger.Warn("recordActivity: failed to record %s for payment id=%d: %v", action, paymentID, err)
	}
}
