package venues

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// VenueLayout is the admin-owned source of truth for how many bookable
// units an event generated from this venue should have. The Document column
// holds the layout JSON (elements + categories) as designed in the admin
// console.
type VenueLayout struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Document  json.RawMessage `gorm:"type:jsonb" json:"document"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName sets the table name for VenueLayout
func (VenueLayout) TableName() string {
	return "venue_layouts"
}
