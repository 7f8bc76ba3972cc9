package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boxoffice/internal/events"
	"boxoffice/internal/shared/constants"
	"boxoffice/internal/venues"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sweeper releases expired holds. Wired to the hold manager so that every
// inventory read starts from a swept view; reads must never show a hold
// that is already past TTL.
type Sweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// EventInventory is one event's full seat-selection view: normalized units,
// the parsed venue layout, and read-only lookup indices rebuilt on every
// load.
type EventInventory struct {
	Event  *events.Event           `json:"event"`
	Units  []InventoryUnit         `json:"units"`
	Layout *venues.LayoutDocument  `json:"layout"`
	ByZone map[string][]*InventoryUnit `json:"-"`
	BySeat map[string]*InventoryUnit   `json:"-"`
	Counts StatusCounts            `json:"counts"`
}

// ErrUnitNotFound is returned when an addressed unit does not exist for the
// event.
var ErrUnitNotFound = errors.New("inventory unit not found")

type Service interface {
	LoadInventory(ctx context.Context, eventID string) (*EventInventory, error)
	GetUnitsByIDs(ctx context.Context, eventID uuid.UUID, unitIDs []string) ([]InventoryUnit, error)
	OverrideUnitStatus(ctx context.Context, eventID, unitID, rawStatus string) (Status, error)
}

type service struct {
	repo         Repository
	eventRepo    events.Repository
	venueService venues.Service
	cacheService cache.Service
	sweeper      Sweeper
}

func NewService(repo Repository, eventRepo events.Repository, venueService venues.Service) *service {
	return &service{
		repo:         repo,
		eventRepo:    eventRepo,
		venueService: venueService,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetSweeper(sweeper Sweeper) {
	s.sweeper = sweeper
}

func (s *service) LoadInventory(ctx context.Context, eventID string) (*EventInventory, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	// Opportunistic sweep so the view never includes stale holds. The
	// periodic sweeper covers idle periods; this covers page loads.
	if s.sweeper != nil {
		if _, err := s.sweeper.SweepExpired(ctx, time.Now()); err != nil {
			logger.GetDefault().WithError(err).Warn("opportunistic sweep failed, serving unswept inventory")
		}
	}

	event, err := s.eventRepo.GetEventByID(ctx, eventUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, events.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	units, err := s.loadUnits(ctx, eventUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory units: %w", err)
	}

	layout := &venues.LayoutDocument{Categories: map[string]venues.Category{}}
	if event.VenueLayoutID != nil {
		// A broken layout document degrades to the empty layout inside the
		// venue service; the units stay usable either way.
		layout, err = s.venueService.GetParsedLayout(ctx, *event.VenueLayoutID)
		if err != nil {
			return nil, fmt.Errorf("failed to load venue layout: %w", err)
		}
	}

	inv := &EventInventory{
		Event:  event,
		Units:  units,
		Layout: layout,
		ByZone: make(map[string][]*InventoryUnit),
		BySeat: make(map[string]*InventoryUnit),
	}

	for i := range units {
		unit := &units[i]
		switch Normalize(string(unit.Status)) {
		case StatusFree:
			inv.Counts.Free++
		case StatusHeld:
			inv.Counts.Held++
		case StatusSold:
			inv.Counts.Sold++
		case StatusBooked:
			inv.Counts.Booked++
		}
		if unit.ZoneID != "" {
			inv.ByZone[unit.ZoneID] = append(inv.ByZone[unit.ZoneID], unit)
		}
		if unit.SeatID != "" {
			inv.BySeat[unit.SeatID] = unit
		}
	}

	return inv, nil
}

func (s *service) GetUnitsByIDs(ctx context.Context, eventID uuid.UUID, unitIDs []string) ([]InventoryUnit, error) {
	return s.repo.GetUnitsByIDs(ctx, eventID, unitIDs)
}

// OverrideUnitStatus sets a unit's status directly, bypassing the state
// machine. Admin-only; the raw value is normalized first so the store only
// ever receives vocabulary members.
func (s *service) OverrideUnitStatus(ctx context.Context, eventID, unitID, rawStatus string) (Status, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return "", fmt.Errorf("invalid event ID: %w", err)
	}

	status := Normalize(rawStatus)

	updated, err := s.repo.UpdateUnitStatus(ctx, eventUUID, unitID, status)
	if err != nil {
		return "", fmt.Errorf("failed to update unit status: %w", err)
	}
	if !updated {
		return "", fmt.Errorf("unit %s: %w", unitID, ErrUnitNotFound)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Delete(ctx, constants.BuildInventoryKey(eventID)); err != nil {
			logger.GetDefault().WithError(err).Debug("failed to invalidate inventory cache")
		}
	}

	return status, nil
}

// loadUnits reads the unit list through the cache. The TTL is short and
// every transition invalidates the key, so staleness is bounded to the
// window between a hold elsewhere and this read, which the conditional
// update resolves anyway.
func (s *service) loadUnits(ctx context.Context, eventID uuid.UUID) ([]InventoryUnit, error) {
	cacheKey := constants.BuildInventoryKey(eventID.String())

	if s.cacheService != nil {
		var cached []InventoryUnit
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			normalizeUnits(cached)
			return cached, nil
		}
	}

	units, err := s.repo.GetUnitsByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, units, constants.TTLInventory); err != nil {
			logger.GetDefault().WithError(err).Debug("failed to cache inventory units")
		}
	}

	return units, nil
}
