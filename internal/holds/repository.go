package holds

import (
	"context"
	"time"

	"boxoffice/internal/inventory"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpiredUnit identifies one unit released by an expiry sweep.
type ExpiredUnit struct {
	EventID uuid.UUID
	UnitID  string
}

// Repository is the hold manager's view of the inventory store. Every
// transition is a conditional update guarded on the current stored status —
// the store, not this process, arbitrates races. Without that primitive two
// concurrent holds on the same unit could both appear to succeed.
type Repository interface {
	// TransitionUnit performs from→to on one unit if its stored status is
	// still from, stamping updated_at. Returns whether the row changed.
	TransitionUnit(ctx context.Context, eventID uuid.UUID, unitID string, from, to inventory.Status) (bool, error)

	// TransitionUnits performs from→to on every listed unit whose stored
	// status is from, returning the unit IDs that actually changed.
	TransitionUnits(ctx context.Context, eventID uuid.UUID, unitIDs []string, from, to inventory.Status) ([]string, error)

	// ClaimZoneUnits atomically holds quantity free ordinals in a zone, or
	// none at all. Returns the claimed unit IDs in ordinal order.
	ClaimZoneUnits(ctx context.Context, eventID uuid.UUID, zoneID string, quantity int) ([]string, error)

	// ReleaseExpired frees every held unit whose updated_at is older than
	// cutoff, across all events.
	ReleaseExpired(ctx context.Context, cutoff time.Time) ([]ExpiredUnit, error)

	// GetUnitStatuses reads current statuses for the listed units. Missing
	// units are absent from the map.
	GetUnitStatuses(ctx context.Context, eventID uuid.UUID, unitIDs []string) (map[string]inventory.Status, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) TransitionUnit(ctx context.Context, eventID uuid.UUID, unitID string, from, to inventory.Status) (bool, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&inventory.InventoryUnit{}).
		Where("event_id = ? AND unit_id = ? AND status = ?", eventID, unitID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) TransitionUnits(ctx context.Context, eventID uuid.UUID, unitIDs []string, from, to inventory.Status) ([]string, error) {
	if len(unitIDs) == 0 {
		return nil, nil
	}

	var changed []string
	err := r.db.WithContext(ctx).Raw(`
		UPDATE inventory_units
		SET status = ?, updated_at = ?
		WHERE event_id = ? AND unit_id IN ? AND status = ?
		RETURNING unit_id`,
		to, time.Now().UTC(), eventID, unitIDs, from,
	).Scan(&changed).Error
	if err != nil {
		return nil, err
	}
	return changed, nil
}

func (r *repository) ClaimZoneUnits(ctx context.Context, eventID uuid.UUID, zoneID string, quantity int) ([]string, error) {
	var claimed []string

	// Single conditional bulk update limited to quantity rows, inside a
	// transaction so a short claim rolls back and the batch stays
	// observably atomic. SKIP LOCKED keeps concurrent claimants from
	// blocking on each other's candidate rows.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			UPDATE inventory_units
			SET status = ?, updated_at = ?
			WHERE id IN (
				SELECT id FROM inventory_units
				WHERE event_id = ? AND zone_id = ? AND status = ?
				ORDER BY ordinal
				LIMIT ?
				FOR UPDATE SKIP LOCKED
			)
			RETURNING unit_id`,
			inventory.StatusHeld, time.Now().UTC(),
			eventID, zoneID, inventory.StatusFree, quantity,
		).Scan(&claimed).Error
		if err != nil {
			return err
		}
		if len(claimed) < quantity {
			return ErrZoneCapacityExceeded
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

func (r *repository) ReleaseExpired(ctx context.Context, cutoff time.Time) ([]ExpiredUnit, error) {
	var expired []ExpiredUnit
	err := r.db.WithContext(ctx).Raw(`
		UPDATE inventory_units
		SET status = ?, updated_at = ?
		WHERE status = ? AND updated_at < ?
		RETURNING event_id, unit_id`,
		inventory.StatusFree, time.Now().UTC(),
		inventory.StatusHeld, cutoff,
	).Scan(&expired).Error
	if err != nil {
		return nil, err
	}
	return expired, nil
}

func (r *repository) GetUnitStatuses(ctx context.Context, eventID uuid.UUID, unitIDs []string) (map[string]inventory.Status, error) {
	var units []inventory.InventoryUnit
	err := r.db.WithContext(ctx).
		Select("unit_id, status").
		Where("event_id = ? AND unit_id IN ?", eventID, unitIDs).
		Find(&units).Error
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]inventory.Status, len(units))
	for _, unit := range units {
		statuses[unit.UnitID] = inventory.Normalize(string(unit.Status))
	}
	return statuses, nil
}
