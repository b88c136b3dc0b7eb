package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/condoreservas/reservation-service/internal/domain"
	reservationRepo "github.com/condoreservas/reservation-service/internal/infra/storage/reservation"
	"github.com/condoreservas/reservation-service/internal/service/reservations/models"
	"github.com/condoreservas/reservation-service/pkg/ptr"
)

// Service covers the reservation operations outside the admission decision:
// lookups, the administrative status override and cancellation. Status
// changes go through the central transition table; the storage layer never
// sees an illegal transition.
type Service struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	logRepo         ActivityLogRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates the reservations service
func NewService(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	logRepo ActivityLogRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		logRepo:         logRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID returns a reservation with its line items and payment history
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	response := models.FromDomain(res)

	payments, err := s.paymentRepo.ListByReservation(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list payments for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to list payments: %v", ErrInternal, err)
	}
	response.AttachPayments(payments)

	return response, nil
}

// GetUserReservations returns a user's reservation history, newest first
func (s *Service) GetUserReservations(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	s.logger.Info("GetUserReservations: fetching reservations for user=%d", userID)

	list, err := s.reservationRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(list), userID)
	return models.FromDomainList(list), nil
}

// GetSpaceReservations returns a space's agenda, oldest first
func (s *Service) GetSpaceReservations(ctx context.Context, spaceID int64) (*models.ReservationListResponse, error) {
	if spaceID <= 0 {
		return nil, fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	s.logger.Info("GetSpaceReservations: fetching reservations for space=%d", spaceID)

	list, err := s.reservationRepo.ListBySpace(ctx, spaceID)
	if err != nil {
		s.logger.Error("GetSpaceReservations: repository error for space=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: GetSpaceReservations - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainList(list), nil
}

// UpdateStatus applies an administrative status change. Requesting the
// current status is a no-op success; anything else must be a legal move of
// the state machine.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: reservation id=%d to status=%s by user=%d", id, req.Status, req.ActorUserID)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for reservation id=%d", req.Status, id)
		return ErrInvalidStatus
	}

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if res.Status == newStatus {
		return nil
	}
	if !res.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: illegal transition %s -> %s for reservation id=%d",
			res.Status, newStatus, id)
		return ErrIllegalTransition
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.recordActivity(ctx, req.ActorUserID, domain.ActionUpdate, id,
		fmt.Sprintf("Reservation status updated to %s", newStatus))

	s.logger.Info("UpdateStatus: reservation id=%d updated to status=%s", id, newStatus)
	return nil
}

// Cancel moves a reservation to cancelled. Line items stay in place; nothing
// is physically removed. Cancelled and completed reservations cannot be
// cancelled again.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, req.ActorUserID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, res.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, domain.ReservationCancelled); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.recordActivity(ctx, req.ActorUserID, domain.ActionCancel, id, "Reservation cancelled")

	s.logger.Info("Cancel: reservation id=%d cancelled", id)
	return nil
}

func (s *Service) recordActivity(ctx context.Context, actorID int64, action string, reservationID int64, description string) {
	entry := &domain.ActivityLog{
		Action:      action,
		Entity:      domain.EntityReservation,
		EntityID:    reservationID,
		Description: description,
		OccurredAt:  s.timeProvider.Now(),
	}
	if actorID > 0 {
		entry.ActorUserID = ptr.Ptr(actorID)
	}

	if err := s.logRepo.Insert(ctx, entry); err != nil {
		s.logger.Warn("recordActivity: failed to record %s for reservation id=%d: %v", action, reservationID, err)
	}
}
