package events

import (
	"encoding/json"
	"time"
)

type CreateEventRequest struct {
	Name          string    `json:"name" binding:"required"`
	VenueLayoutID *string   `json:"venue_layout_id" binding:"omitempty,uuid"`
	BasePrice     float64   `json:"base_price" binding:"omitempty,min=0"`
	StartsAt      time.Time `json:"starts_at" binding:"required"`
}

type UpdatePriceDocumentRequest struct {
	Document json.RawMessage `json:"document" binding:"required"`
}
