package venues

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"boxoffice/internal/shared/constants"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrLayoutUnparsable means a stored layout document failed to parse.
var ErrLayoutUnparsable = errors.New("layout document unparsable")

type Service interface {
	CreateLayout(ctx context.Context, req CreateLayoutRequest) (*VenueLayout, error)
	GetLayoutByID(ctx context.Context, id string) (*VenueLayout, error)
	GetLayouts(ctx context.Context) ([]VenueLayout, error)
	UpdateLayout(ctx context.Context, id string, req UpdateLayoutRequest) (*VenueLayout, error)
	DeleteLayout(ctx context.Context, id string) error

	// GetParsedLayout loads and parses a layout document. A malformed
	// document degrades to an empty layout rather than failing the read:
	// units already generated from it remain usable.
	GetParsedLayout(ctx context.Context, id uuid.UUID) (*LayoutDocument, error)

	// GetParsedLayoutStrict is the same load without the degradation: a
	// malformed document fails with ErrLayoutUnparsable. Destructive flows
	// such as inventory regeneration must use this variant; regenerating
	// from a degraded empty layout would wipe an event's inventory.
	GetParsedLayoutStrict(ctx context.Context, id uuid.UUID) (*LayoutDocument, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cacheService: cacheService}
}

func (s *service) CreateLayout(ctx context.Context, req CreateLayoutRequest) (*VenueLayout, error) {
	// Reject documents that don't parse; the designer should never save one.
	if _, err := ParseLayoutDocument(req.Document); err != nil {
		return nil, fmt.Errorf("invalid layout document: %w", err)
	}

	layout := &VenueLayout{
		ID:       uuid.New(),
		Name:     req.Name,
		Document: req.Document,
	}

	if err := s.repo.CreateLayout(ctx, layout); err != nil {
		return nil, fmt.Errorf("failed to create layout: %w", err)
	}

	return layout, nil
}

func (s *service) GetLayoutByID(ctx context.Context, id string) (*VenueLayout, error) {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid layout ID: %w", err)
	}

	layout, err := s.repo.GetLayoutByID(ctx, layoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("layout not found")
		}
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}

	return layout, nil
}

func (s *service) GetLayouts(ctx context.Context) ([]VenueLayout, error) {
	return s.repo.GetLayouts(ctx)
}

func (s *service) UpdateLayout(ctx context.Context, id string, req UpdateLayoutRequest) (*VenueLayout, error) {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid layout ID: %w", err)
	}

	_, err = s.repo.GetLayoutByID(ctx, layoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("layout not found")
		}
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Document != nil {
		if _, err := ParseLayoutDocument(req.Document); err != nil {
			return nil, fmt.Errorf("invalid layout document: %w", err)
		}
		updates["document"] = json.RawMessage(req.Document)
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateLayout(ctx, layoutID, updates); err != nil {
			return nil, fmt.Errorf("failed to update layout: %w", err)
		}
		s.invalidateLayoutCache(ctx, layoutID)
	}

	return s.repo.GetLayoutByID(ctx, layoutID)
}

func (s *service) DeleteLayout(ctx context.Context, id string) error {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid layout ID: %w", err)
	}

	_, err = s.repo.GetLayoutByID(ctx, layoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("layout not found")
		}
		return fmt.Errorf("failed to get layout: %w", err)
	}

	if err := s.repo.DeleteLayout(ctx, layoutID); err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}
	s.invalidateLayoutCache(ctx, layoutID)

	return nil
}

func (s *service) GetParsedLayout(ctx context.Context, id uuid.UUID) (*LayoutDocument, error) {
	doc, err := s.GetParsedLayoutStrict(ctx, id)
	if err != nil {
		if errors.Is(err, ErrLayoutUnparsable) {
			// Graceful degradation: the descriptive document is broken but
			// the generated inventory is still valid, so serve an empty
			// layout.
			logger.GetDefault().WithError(err).Warn("layout document unparsable, degrading to empty layout")
			return &LayoutDocument{Categories: map[string]Category{}}, nil
		}
		return nil, err
	}

	return doc, nil
}

func (s *service) GetParsedLayoutStrict(ctx context.Context, id uuid.UUID) (*LayoutDocument, error) {
	layout, err := s.repo.GetLayoutByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("layout not found")
		}
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}

	doc, err := ParseLayoutDocument(layout.Document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayoutUnparsable, err)
	}

	return doc, nil
}

func (s *service) invalidateLayoutCache(ctx context.Context, layoutID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildLayoutKey(layoutID.String())); err != nil {
		logger.GetDefault().WithError(err).Debug("failed to invalidate layout cache")
	}
}
