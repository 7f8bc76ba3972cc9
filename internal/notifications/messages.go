package notifications

import (
	"encoding/json"
	"time"
)

// Message types carried on the inventory changes topic.
const (
	MessageTypeInventoryChange = "inventory_change"
	MessageTypePriceChange     = "price_change"
)

// InventoryChange announces one unit's status transition.
type InventoryChange struct {
	EventID   string    `json:"event_id"`
	UnitID    string    `json:"unit_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceChange announces a new price document for an event.
type PriceChange struct {
	EventID   string          `json:"event_id"`
	Document  json.RawMessage `json:"document"`
	Timestamp time.Time       `json:"timestamp"`
}

// ChangeMessage is the wire envelope: a type discriminator plus exactly one
// payload.
type ChangeMessage struct {
	Type      string           `json:"type"`
	Inventory *InventoryChange `json:"inventory,omitempty"`
	Price     *PriceChange     `json:"price,omitempty"`
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
