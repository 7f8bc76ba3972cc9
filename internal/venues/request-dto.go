package venues

import "encoding/json"

type CreateLayoutRequest struct {
	Name     string          `json:"name" binding:"required"`
	Document json.RawMessage `json:"document" binding:"required"`
}

type UpdateLayoutRequest struct {
	Name     *string         `json:"name" binding:"omitempty"`
	Document json.RawMessage `json:"document" binding:"omitempty"`
}
