package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the minimal event record the inventory core needs: a venue
// layout reference (nil means general admission) and the price document the
// storefront renders live.
type Event struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	VenueLayoutID *uuid.UUID      `gorm:"type:uuid;index" json:"venue_layout_id,omitempty"`
	BasePrice     float64         `gorm:"default:0" json:"base_price"`
	PriceDocument json.RawMessage `gorm:"type:jsonb" json:"price_document,omitempty"`
	StartsAt      time.Time       `json:"starts_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName sets the table name for Event
func (Event) TableName() string {
	return "events"
}

// GeneralAdmission reports whether the event has no seated venue layout.
func (e *Event) GeneralAdmission() bool {
	return e.VenueLayoutID == nil
}
