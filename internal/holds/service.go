package holds

import (
	"context"
	"fmt"
	"time"

	"boxoffice/internal/inventory"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/constants"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"

	"github.com/google/uuid"
)

// ChangePublisher pushes unit status transitions to live observers.
type ChangePublisher interface {
	PublishInventoryChange(ctx context.Context, eventID, unitID string, status inventory.Status) error
}

type Service interface {
	// Hold places a time-boxed claim on one free unit. A false return is
	// contention (already held or sold), not a fault.
	Hold(ctx context.Context, eventID, unitID string) (bool, error)

	// HoldInZone claims quantity free ordinals in a zone, all or nothing.
	HoldInZone(ctx context.Context, eventID, zoneID string, quantity int) ([]string, error)

	// Release frees the listed units if held. Idempotent: releasing a free
	// or sold unit is a no-op.
	Release(ctx context.Context, eventID string, unitIDs []string) error

	// Purchase converts held units to sold, unit by unit. Units already
	// converted before a failure stay sold.
	Purchase(ctx context.Context, eventID string, unitIDs []string) error

	// SweepExpired frees every hold older than the configured TTL.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type service struct {
	repo         Repository
	config       *config.Config
	cacheService cache.Service
	publisher    ChangePublisher
}

func NewService(repo Repository, cfg *config.Config) *service {
	return &service{
		repo:   repo,
		config: cfg,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetChangePublisher(publisher ChangePublisher) {
	s.publisher = publisher
}

func (s *service) Hold(ctx context.Context, eventID, unitID string) (bool, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return false, fmt.Errorf("invalid event ID: %w", err)
	}

	held, err := s.repo.TransitionUnit(ctx, eventUUID, unitID, inventory.StatusFree, inventory.StatusHeld)
	if err != nil {
		return false, fmt.Errorf("failed to hold unit: %w", err)
	}

	if !held {
		// Distinguish contention from a unit that doesn't exist.
		statuses, err := s.repo.GetUnitStatuses(ctx, eventUUID, []string{unitID})
		if err != nil {
			return false, fmt.Errorf("failed to check unit status: %w", err)
		}
		if _, ok := statuses[unitID]; !ok {
			return false, fmt.Errorf("unit %s: %w", unitID, ErrUnitNotFound)
		}
		return false, nil
	}

	s.afterTransition(ctx, eventUUID, []string{unitID}, inventory.StatusHeld)
	logger.GetDefault().LogHoldPlaced(ctx, eventID, unitID, s.config.Hold.TTL)
	return true, nil
}

func (s *service) HoldInZone(ctx context.Context, eventID, zoneID string, quantity int) ([]string, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if err := s.checkUnitCap(quantity); err != nil {
		return nil, err
	}

	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	claimed, err := s.repo.ClaimZoneUnits(ctx, eventUUID, zoneID, quantity)
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, eventUUID, claimed, inventory.StatusHeld)
	return claimed, nil
}

func (s *service) Release(ctx context.Context, eventID string, unitIDs []string) error {
	if len(unitIDs) == 0 {
		return nil
	}
	if err := s.checkUnitCap(len(unitIDs)); err != nil {
		return err
	}

	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	released, err := s.repo.TransitionUnits(ctx, eventUUID, unitIDs, inventory.StatusHeld, inventory.StatusFree)
	if err != nil {
		return fmt.Errorf("failed to release units: %w", err)
	}

	s.afterTransition(ctx, eventUUID, released, inventory.StatusFree)
	return nil
}

func (s *service) Purchase(ctx context.Context, eventID string, unitIDs []string) error {
	if len(unitIDs) == 0 {
		return fmt.Errorf("no units specified")
	}
	if err := s.checkUnitCap(len(unitIDs)); err != nil {
		return err
	}

	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	// Unit-by-unit: each transition is independently atomic, so the
	// at-most-one-holder invariant survives without a multi-row
	// transaction. The cost is a possible partial purchase; units flipped
	// before a failure stay sold and are surfaced for follow-up.
	var sold []string
	for _, unitID := range unitIDs {
		ok, err := s.repo.TransitionUnit(ctx, eventUUID, unitID, inventory.StatusHeld, inventory.StatusSold)
		if err != nil {
			s.afterTransition(ctx, eventUUID, sold, inventory.StatusSold)
			return fmt.Errorf("failed to purchase unit %s (already sold: %v): %w", unitID, sold, err)
		}
		if !ok {
			s.afterTransition(ctx, eventUUID, sold, inventory.StatusSold)
			return fmt.Errorf("unit %s (already sold: %v): %w", unitID, sold, ErrUnitNotHeld)
		}
		sold = append(sold, unitID)
	}

	s.afterTransition(ctx, eventUUID, sold, inventory.StatusSold)
	return nil
}

func (s *service) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-s.config.Hold.TTL)

	expired, err := s.repo.ReleaseExpired(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired holds: %w", err)
	}

	for _, unit := range expired {
		s.afterTransition(ctx, unit.EventID, []string{unit.UnitID}, inventory.StatusFree)
	}

	if len(expired) > 0 {
		logger.GetDefault().LogSweepCompleted(ctx, len(expired))
	}
	return len(expired), nil
}

// checkUnitCap enforces the configured per-request unit cap on every
// batch operation. Zero or negative disables the cap.
func (s *service) checkUnitCap(count int) error {
	max := s.config.Hold.MaxUnitsPerRequest
	if max > 0 && count > max {
		return fmt.Errorf("%d units exceeds the per-request cap of %d: %w", count, max, ErrTooManyUnits)
	}
	return nil
}

// afterTransition invalidates the cached inventory view and publishes
// change notifications for the units that actually transitioned.
func (s *service) afterTransition(ctx context.Context, eventID uuid.UUID, unitIDs []string, status inventory.Status) {
	if len(unitIDs) == 0 {
		return
	}

	if s.cacheService != nil {
		if err := s.cacheService.Delete(ctx, constants.BuildInventoryKey(eventID.String())); err != nil {
			logger.GetDefault().WithError(err).Debug("failed to invalidate inventory cache")
		}
	}

	if s.publisher != nil {
		for _, unitID := range unitIDs {
			if err := s.publisher.PublishInventoryChange(ctx, eventID.String(), unitID, status); err != nil {
				logger.GetDefault().WithError(err).Warn("failed to publish inventory change")
			}
		}
	}
}
