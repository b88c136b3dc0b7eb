package spaces

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/condoreservas/reservation-service/internal/domain"
	spaceRepo "github.com/condoreservas/reservation-service/internal/infra/storage/space"
	"github.com/condoreservas/reservation-service/internal/service/spaces/models"
)

// Service is the read side of the space catalog: listings, detail views and
// the point-in-time availability check.
type Service struct {
	spaceRepo       SpaceRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService creates the spaces service
func NewService(spaceRepo SpaceRepository, reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		spaceRepo:       spaceRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// List returns all active spaces with their add-on catalogs
func (s *Service) List(ctx context.Context) (*models.SpaceListResponse, error) {
	list, err := s.spaceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	for _, space := range list {
		addOns, err := s.spaceRepo.ListAddOns(ctx, space.ID)
		if err != nil {
			s.logger.Error("List: failed to list add-ons for space id=%d: %v", space.ID, err)
			return nil, fmt.Errorf("%w: List - failed to list add-ons: %v", ErrInternal, err)
		}
		space.AddOns = addOns
	}

	s.logger.Info("List: fetched %d active spaces", len(list))
	return models.FromDomainList(list), nil
}

// GetByID returns one active space with its rules and add-on catalog
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SpaceResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	space, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}

	rules, err := s.spaceRepo.ListRules(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list rules for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to list rules: %v", ErrInternal, err)
	}
	space.Rules = rules

	addOns, err := s.spaceRepo.ListAddOns(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list add-ons for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to list add-ons: %v", ErrInternal, err)
	}
	space.AddOns = addOns

	return models.FromDomain(space), nil
}

// CheckAvailability reports whether a space is open at instant at: the
// recurring rules must allow the day and no active reservation may cover the
// instant.
func (s *Service) CheckAvailability(ctx context.Context, spaceID int64, at time.Time) (*models.AvailabilityResponse, error) {
	if spaceID <= 0 {
		return nil, fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if _, err := s.loadActive(ctx, spaceID); err != nil {
		return nil, err
	}

	rules, err := s.spaceRepo.ListRules(ctx, spaceID)
	if err != nil {
		s.logger.Error("CheckAvailability: failed to list rules for space id=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: CheckAvailability - failed to list rules: %v", ErrInternal, err)
	}

	available := domain.RulesAllow(rules, at)
	if available {
		// A one-tick window makes the interval overlap query answer "does any
		// active reservation cover this instant".
		occupied, err := s.reservationRepo.ListActiveBySpaceOverlapping(ctx, spaceID, at, at.Add(time.Nanosecond))
		if err != nil {
			s.logger.Error("CheckAvailability: failed to list reservations for space id=%d: %v", spaceID, err)
			return nil, fmt.Errorf("%w: CheckAvailability - failed to list reservations: %v", ErrInternal, err)
		}
		available = len(occupied) == 0
	}

	s.logger.Info("CheckAvailability: space id=%d at=%s available=%t", spaceID, at.Format(time.RFC3339), available)
	return &models.AvailabilityResponse{
		SpaceID:   spaceID,
		At:        at,
		Available: available,
	}, nil
}

func (s *Service) loadActive(ctx context.Context, id int64) (*domain.Space, error) {
	space, err := s.spaceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("space id=%d not found", id)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("repository error for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	if !space.Active || space.Type == nil || !space.Type.Active {
		s.logger.Warn("space id=%d is inactive", id)
		return nil, ErrSpaceNotFound
	}
	return space, nil
}
