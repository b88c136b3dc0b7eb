package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/condoreservas/reservation-service/internal/domain"
	spaceRepo "github.com/condoreservas/reservation-service/internal/infra/storage/space"
	userRepo "github.com/condoreservas/reservation-service/internal/infra/storage/user"
	"github.com/condoreservas/reservation-service/pkg/ptr"
	"github.com/condoreservas/reservation-service/pkg/txmanager"
)

// UseCase is the reservation admission workflow: it decides whether a
// requested interval is admissible, what it costs and which status the new
// reservation enters.
type UseCase struct {
	spaceRepo       SpaceRepository
	userRepo        UserRepository
	reservationRepo ReservationRepository
	logRepo         ActivityLogRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the admission use case
func NewUseCase(
	spaceRepo SpaceRepository,
	userRepo UserRepository,
	reservationRepo ReservationRepository,
	logRepo ActivityLogRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		spaceRepo:       spaceRepo,
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
		logRepo:         logRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the admission decision. The conflict check and the insert run
// inside one serializable transaction: two concurrent requests for
// overlapping intervals cannot both pass the check and both commit.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, space=%d, interval=[%s, %s)",
		req.UserID, req.SpaceID, req.StartsAt.Format("2006-01-02 15:04"), req.EndsAt.Format("2006-01-02 15:04"))

	// 1. Request shape
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the space and its type policy
	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("CreateReservation: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}
	if !space.Active || !space.Type.Active {
		uc.logger.Warn("CreateReservation: space id=%d is inactive", req.SpaceID)
		return nil, ErrSpaceNotFound
	}

	// 3. Resolve the requesting resident
	if _, err := uc.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 4. Add-on catalog for pricing
	catalog, err := uc.spaceRepo.ListAddOns(ctx, req.SpaceID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to list add-ons for space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to list add-ons: %v", ErrInternal, err)
	}

	var result *domain.Reservation

	// 5. Admission transaction: conflict check, duration bounds, pricing and
	// insert commit or fail as one.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.reservationRepo.ListActiveBySpaceOverlapping(txCtx, req.SpaceID, req.StartsAt, req.EndsAt)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		if conflict := findConflict(req, existing); conflict != nil {
			uc.logger.Warn("CreateReservation: conflict with reservation id=%d on space id=%d",
				conflict.ID, req.SpaceID)
			return ErrSlotConflict
		}

		minutes, err := validateDuration(space.Type, req)
		if err != nil {
			uc.logger.Warn("CreateReservation: duration validation failed: %v", err)
			return err
		}

		total, items, err := priceReservation(space.Type, catalog, req.AddOns)
		if err != nil {
			uc.logger.Warn("CreateReservation: pricing failed: %v", err)
			return err
		}

		status := domain.ReservationConfirmed
		if space.Type.RequiresPayment {
			status = domain.ReservationPending
		}

		uc.logger.Info("CreateReservation: admitted, duration=%dmin, total=%s, status=%s",
			minutes, total.StringFixed(2), status)

		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			UserID:          req.UserID,
			SpaceID:         req.SpaceID,
			StartsAt:        req.StartsAt,
			EndsAt:          req.EndsAt,
			Status:          status,
			RequiresPayment: space.Type.RequiresPayment,
			TotalPrice:      total,
			Notes:           req.Notes,
			Items:           items,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		// Losing the serialization race is a conflict, the same outcome as
		// finding the overlap directly.
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateReservation: lost the admission race on space id=%d", req.SpaceID)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	// 6. Best-effort activity log, outside the transaction
	uc.recordActivity(ctx, result, space)

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)
	return fromDomain(result), nil
}

func (uc *UseCase) recordActivity(ctx context.Context, res *domain.Reservation, space *domain.Space) {
	entry := &domain.ActivityLog{
		ActorUserID: ptr.Ptr(res.UserID),
		Action:      domain.ActionCreate,
		Entity:      domain.EntityReservation,
		EntityID:    res.ID,
		Description: fmt.Sprintf("Reservation created for space %q from %s to %s",
			space.Name, res.StartsAt.Format("2006-01-02 15:04"), res.EndsAt.Format("2006-01-02 15:04")),
		OccurredAt: uc.timeProvider.Now(),
	}

	if err := uc.logRepo.Insert(ctx, entry); err != nil {
		uc.logger.Warn("CreateReservation: failed to record activity log for reservation id=%d: %v", res.ID, err)
	}
}
