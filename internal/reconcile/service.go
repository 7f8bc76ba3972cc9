package reconcile

import (
	"context"
	"errors"
	"fmt"

	"boxoffice/internal/events"
	"boxoffice/internal/inventory"
	"boxoffice/internal/shared/constants"
	"boxoffice/internal/venues"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"log/slog"
)

type Service interface {
	// Regenerate replaces an event's inventory with a fresh projection of
	// its venue layout. Destructive: existing holds and sale records for
	// the event are lost. Explicit, confirmed admin action only.
	Regenerate(ctx context.Context, eventID string) error

	// Compare audits generated inventory against a layout's declared
	// capacity, per event and aggregated. Read-only.
	Compare(ctx context.Context, venueLayoutID string) (*DiscrepancyReport, error)
}

type service struct {
	inventoryRepo inventory.Repository
	eventRepo     events.Repository
	venueService  venues.Service
	cacheService  cache.Service
}

func NewService(inventoryRepo inventory.Repository, eventRepo events.Repository, venueService venues.Service) *service {
	return &service{
		inventoryRepo: inventoryRepo,
		eventRepo:     eventRepo,
		venueService:  venueService,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) Regenerate(ctx context.Context, eventID string) error {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := s.eventRepo.GetEventByID(ctx, eventUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return events.ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	if event.VenueLayoutID == nil {
		return fmt.Errorf("event has no venue layout to regenerate from")
	}

	// Strict parse: regeneration deletes the event's inventory first, so a
	// layout that degraded to empty would silently wipe it.
	layout, err := s.venueService.GetParsedLayoutStrict(ctx, *event.VenueLayoutID)
	if err != nil {
		return fmt.Errorf("failed to load venue layout: %w", err)
	}

	units := UnitsFromLayout(eventUUID, layout)

	if err := s.inventoryRepo.DeleteUnitsByEventID(ctx, eventUUID); err != nil {
		return fmt.Errorf("failed to delete existing inventory: %w", err)
	}
	if err := s.inventoryRepo.CreateUnits(ctx, units); err != nil {
		return fmt.Errorf("failed to create inventory units: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Delete(ctx, constants.BuildInventoryKey(eventID)); err != nil {
			logger.GetDefault().WithError(err).Debug("failed to invalidate inventory cache")
		}
	}

	logger.GetDefault().Info("inventory regenerated",
		slog.String("event_id", eventID),
		slog.Int("units", len(units)),
	)
	return nil
}

func (s *service) Compare(ctx context.Context, venueLayoutID string) (*DiscrepancyReport, error) {
	layoutUUID, err := uuid.Parse(venueLayoutID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue layout ID: %w", err)
	}

	layout, err := s.venueService.GetParsedLayout(ctx, layoutUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to load venue layout: %w", err)
	}
	declared := layout.DeclaredCapacity()

	eventList, err := s.eventRepo.GetEventsByVenueLayoutID(ctx, layoutUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for venue: %w", err)
	}

	report := &DiscrepancyReport{
		VenueLayoutID: layoutUUID,
		Declared:      declared,
	}

	for _, event := range eventList {
		counts, err := s.inventoryRepo.CountByStatus(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count inventory for event %s: %w", event.ID, err)
		}

		actual := counts.Total()
		report.Events = append(report.Events, EventDiscrepancy{
			EventID:    event.ID,
			EventName:  event.Name,
			Declared:   declared,
			Actual:     actual,
			Difference: declared - actual,
			Severity:   ClassifySeverity(declared, actual),
			Counts:     counts,
		})
		report.TotalActual += actual
	}

	aggregateDeclared := declared * len(report.Events)
	report.Difference = aggregateDeclared - report.TotalActual
	report.Severity = ClassifySeverity(aggregateDeclared, report.TotalActual)

	return report, nil
}

// UnitsFromLayout derives an event's inventory from layout elements: a seat
// element becomes one seat unit; a zone element becomes capacity ordinal
// units, or a single seat-equivalent unit when capacity is 1. Stage
// decorations contribute nothing.
func UnitsFromLayout(eventID uuid.UUID, layout *venues.LayoutDocument) []inventory.InventoryUnit {
	var units []inventory.InventoryUnit
	for _, elem := range layout.Elements {
		switch {
		case elem.Seat != nil:
			units = append(units, inventory.NewSeatUnit(
				eventID, elem.Seat.ID, elem.Seat.Section, elem.Seat.Row, elem.Seat.CategoryID,
			))
		case elem.Zone != nil:
			if elem.Zone.Capacity == 1 {
				units = append(units, inventory.NewSeatUnit(
					eventID, elem.Zone.ID, "", "", elem.Zone.CategoryID,
				))
				continue
			}
			for ordinal := 1; ordinal <= elem.Zone.Capacity; ordinal++ {
				units = append(units, inventory.NewZoneUnit(
					eventID, elem.Zone.ID, ordinal, elem.Zone.CategoryID,
				))
			}
		}
	}
	return units
}
