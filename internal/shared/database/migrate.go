package database

import (
	"boxoffice/internal/events"
	"boxoffice/internal/inventory"
	"boxoffice/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&venues.VenueLayout{},
		&events.Event{},
		&inventory.InventoryUnit{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
