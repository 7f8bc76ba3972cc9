package database

import (
	"gorm.io/gorm"
)

// Statements here run on every boot, so each must be safe to re-run.
// Postgres has no ADD CONSTRAINT IF NOT EXISTS; the composite unique index
// guaranteeing one row per (event, unit) is declared on the model instead
// (inventory.InventoryUnit, uniqueIndex:idx_event_unit) and created by
// AutoMigrate.
var constraintStatements = []string{
	// Index for the expiry sweep: held rows ordered by last transition time.
	`CREATE INDEX IF NOT EXISTS idx_inventory_units_status_updated
	 ON inventory_units (status, updated_at);`,

	// Index for zone claims: free units of a zone in ordinal order.
	`CREATE INDEX IF NOT EXISTS idx_inventory_units_zone_claim
	 ON inventory_units (event_id, zone_id, status, ordinal);`,
}

// MigrateConstraints creates the indexes the concurrency paths depend on.
func MigrateConstraints(db *gorm.DB) error {
	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
