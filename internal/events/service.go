package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"boxoffice/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrEventNotFound is returned when an event row cannot be read. Structural:
// the whole operation fails, nothing degrades.
var ErrEventNotFound = errors.New("event not found")

// PricePublisher pushes price document changes to live observers.
type PricePublisher interface {
	PublishPriceChange(ctx context.Context, eventID string, document json.RawMessage) error
}

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	GetEvents(ctx context.Context) ([]Event, error)
	UpdatePriceDocument(ctx context.Context, id string, document json.RawMessage) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	publisher PricePublisher
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// SetPricePublisher wires the change notifier. Optional; without it price
// updates still persist, they just aren't pushed live.
func (s *service) SetPricePublisher(publisher PricePublisher) {
	s.publisher = publisher
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &Event{
		ID:        uuid.New(),
		Name:      req.Name,
		BasePrice: req.BasePrice,
		StartsAt:  req.StartsAt,
	}

	if req.VenueLayoutID != nil {
		layoutID, err := uuid.Parse(*req.VenueLayoutID)
		if err != nil {
			return nil, fmt.Errorf("invalid venue layout ID: %w", err)
		}
		event.VenueLayoutID = &layoutID
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

func (s *service) GetEventByID(ctx context.Context, id string) (*Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

func (s *service) GetEvents(ctx context.Context) ([]Event, error) {
	return s.repo.GetEvents(ctx)
}

func (s *service) UpdatePriceDocument(ctx context.Context, id string, document json.RawMessage) (*Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	if !json.Valid(document) {
		return nil, fmt.Errorf("price document is not valid JSON")
	}

	if err := s.repo.UpdateEvent(ctx, eventID, map[string]interface{}{
		"price_document": document,
	}); err != nil {
		return nil, fmt.Errorf("failed to update price document: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishPriceChange(ctx, eventID.String(), document); err != nil {
			logger.GetDefault().WithError(err).Warn("failed to publish price change")
		}
	}

	return s.repo.GetEventByID(ctx, eventID)
}

func (s *service) DeleteEvent(ctx context.Context, id string) error {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	_, err = s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	return s.repo.DeleteEvent(ctx, eventID)
}
