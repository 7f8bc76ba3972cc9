package holds

import "time"

type HoldResponse struct {
	Held      bool      `json:"held"`
	EventID   string    `json:"event_id"`
	UnitID    string    `json:"unit_id,omitempty"`
	UnitIDs   []string  `json:"unit_ids,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	TTL       int       `json:"ttl_seconds,omitempty"`
}

type SweepResponse struct {
	Released int `json:"released"`
}
