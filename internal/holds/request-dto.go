package holds

type HoldRequest struct {
	EventID string `json:"event_id" binding:"required,uuid"`
	UnitID  string `json:"unit_id" binding:"required"`
}

// Upper bounds on quantity and unit lists are enforced by the service
// against the configured per-request cap, not by binding tags.

type ZoneHoldRequest struct {
	EventID  string `json:"event_id" binding:"required,uuid"`
	ZoneID   string `json:"zone_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type ReleaseRequest struct {
	EventID string   `json:"event_id" binding:"required,uuid"`
	UnitIDs []string `json:"unit_ids" binding:"required,min=1"`
}

type PurchaseRequest struct {
	EventID string   `json:"event_id" binding:"required,uuid"`
	UnitIDs []string `json:"unit_ids" binding:"required,min=1"`
}
