package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Unit kinds. A zone with capacity 1 is represented as a seat unit; the two
// are logically equivalent and the seat form keeps the common case simple.
const (
	KindSeat = "seat"
	KindZone = "zone"
)

// InventoryUnit is the atomic thing that can be held or sold. Seat units
// have capacity exactly 1 and carry section/row labels; zone units are one
// ordinal slot (1..capacity) inside a general-admission zone.
type InventoryUnit struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_event_unit" json:"event_id"`
	UnitID  string    `gorm:"not null;uniqueIndex:idx_event_unit" json:"unit_id"`
	Kind    string    `gorm:"type:varchar(10);not null" json:"kind"`

	// Seat units only
	SeatID  string `gorm:"index" json:"seat_id,omitempty"`
	Section string `json:"section,omitempty"`
	Row     string `json:"row,omitempty"`

	// Zone units only
	ZoneID  string `gorm:"index" json:"zone_id,omitempty"`
	Ordinal int    `json:"ordinal,omitempty"`

	CategoryID string `json:"category_id,omitempty"`

	// UpdatedAt is refreshed on every status transition and is the sole
	// input to hold expiry.
	Status    Status    `gorm:"type:varchar(20);default:'free'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for InventoryUnit
func (InventoryUnit) TableName() string {
	return "inventory_units"
}

func (u *InventoryUnit) IsFree() bool {
	return u.Status == StatusFree
}

func (u *InventoryUnit) IsHeld() bool {
	return u.Status == StatusHeld
}

// HoldExpired reports whether a held unit's claim has outlived ttl at now.
// Only meaningful for held units.
func (u *InventoryUnit) HoldExpired(now time.Time, ttl time.Duration) bool {
	return u.Status == StatusHeld && now.Sub(u.UpdatedAt) > ttl
}

// ZoneUnitID builds the stable unit identifier for one ordinal slot of a
// zone. Seat units use the seat element id directly.
func ZoneUnitID(zoneID string, ordinal int) string {
	return fmt.Sprintf("%s#%d", zoneID, ordinal)
}

// NewSeatUnit creates a free seat unit for an event.
func NewSeatUnit(eventID uuid.UUID, seatID, section, row, categoryID string) InventoryUnit {
	return InventoryUnit{
		EventID:    eventID,
		UnitID:     seatID,
		Kind:       KindSeat,
		SeatID:     seatID,
		Section:    section,
		Row:        row,
		CategoryID: categoryID,
		Status:     StatusFree,
	}
}

// NewZoneUnit creates a free ordinal unit inside a zone for an event.
func NewZoneUnit(eventID uuid.UUID, zoneID string, ordinal int, categoryID string) InventoryUnit {
	return InventoryUnit{
		EventID:    eventID,
		UnitID:     ZoneUnitID(zoneID, ordinal),
		Kind:       KindZone,
		ZoneID:     zoneID,
		Ordinal:    ordinal,
		CategoryID: categoryID,
		Status:     StatusFree,
	}
}

// StatusCounts aggregates unit counts per status for one event. Booked
// covers legacy rows reserved outside the hold/sale flow.
type StatusCounts struct {
	Free   int `json:"free"`
	Held   int `json:"held"`
	Sold   int `json:"sold"`
	Booked int `json:"booked,omitempty"`
}

func (c StatusCounts) Total() int {
	return c.Free + c.Held + c.Sold + c.Booked
}
