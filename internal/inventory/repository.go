package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Unit CRUD
	CreateUnits(ctx context.Context, units []InventoryUnit) error
	GetUnitsByEventID(ctx context.Context, eventID uuid.UUID) ([]InventoryUnit, error)
	GetUnitsByIDs(ctx context.Context, eventID uuid.UUID, unitIDs []string) ([]InventoryUnit, error)
	DeleteUnitsByEventID(ctx context.Context, eventID uuid.UUID) error

	// Admin overrides
	UpdateUnitStatus(ctx context.Context, eventID uuid.UUID, unitID string, status Status) (bool, error)

	// Aggregates
	CountUnitsByEventID(ctx context.Context, eventID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, eventID uuid.UUID) (StatusCounts, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUnits(ctx context.Context, units []InventoryUnit) error {
	if len(units) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&units, 500).Error
}

func (r *repository) GetUnitsByEventID(ctx context.Context, eventID uuid.UUID) ([]InventoryUnit, error) {
	var units []InventoryUnit
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("zone_id ASC, ordinal ASC, section ASC, row ASC, unit_id ASC").
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	normalizeUnits(units)
	return units, nil
}

func (r *repository) GetUnitsByIDs(ctx context.Context, eventID uuid.UUID, unitIDs []string) ([]InventoryUnit, error) {
	var units []InventoryUnit
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND unit_id IN ?", eventID, unitIDs).
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	normalizeUnits(units)
	return units, nil
}

func (r *repository) DeleteUnitsByEventID(ctx context.Context, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&InventoryUnit{}, "event_id = ?", eventID).Error
}

// UpdateUnitStatus sets a unit's status unconditionally. This is the admin
// escape hatch; regular transitions go through the hold manager's
// conditional updates.
func (r *repository) UpdateUnitStatus(ctx context.Context, eventID uuid.UUID, unitID string, status Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&InventoryUnit{}).
		Where("event_id = ? AND unit_id = ?", eventID, unitID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) CountUnitsByEventID(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&InventoryUnit{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByStatus(ctx context.Context, eventID uuid.UUID) (StatusCounts, error) {
	var rows []struct {
		Status string
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&InventoryUnit{}).
		Select("status, count(*) as count").
		Where("event_id = ?", eventID).
		Group("status").
		Find(&rows).Error
	if err != nil {
		return StatusCounts{}, err
	}

	var counts StatusCounts
	for _, row := range rows {
		switch Normalize(row.Status) {
		case StatusFree:
			counts.Free += row.Count
		case StatusHeld:
			counts.Held += row.Count
		case StatusSold:
			counts.Sold += row.Count
		case StatusBooked:
			counts.Booked += row.Count
		}
	}
	return counts, nil
}

// normalizeUnits applies the status normalizer to every row coming off the
// store. Raw values are never returned to callers.
func normalizeUnits(units []InventoryUnit) {
	for i := range units {
		units[i].Status = Normalize(string(units[i].Status))
	}
}
