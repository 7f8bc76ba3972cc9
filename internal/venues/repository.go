package venues

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateLayout(ctx context.Context, layout *VenueLayout) error
	GetLayoutByID(ctx context.Context, id uuid.UUID) (*VenueLayout, error)
	GetLayouts(ctx context.Context) ([]VenueLayout, error)
	UpdateLayout(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteLayout(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLayout(ctx context.Context, layout *VenueLayout) error {
	return r.db.WithContext(ctx).Create(layout).Error
}

func (r *repository) GetLayoutByID(ctx context.Context, id uuid.UUID) (*VenueLayout, error) {
	var layout VenueLayout
	err := r.db.WithContext(ctx).First(&layout, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *repository) GetLayouts(ctx context.Context) ([]VenueLayout, error) {
	var layouts []VenueLayout
	err := r.db.WithContext(ctx).Order("name ASC").Find(&layouts).Error
	return layouts, err
}

func (r *repository) UpdateLayout(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&VenueLayout{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeleteLayout(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&VenueLayout{}, "id = ?", id).Error
}
