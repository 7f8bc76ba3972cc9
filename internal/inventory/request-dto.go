package inventory

// OverrideStatusRequest is the admin payload for forcing a unit's status.
// seatstatus rejects values outside the vocabulary and its accepted legacy
// spellings before the normalizer ever sees them.
type OverrideStatusRequest struct {
	Status string `json:"status" binding:"required,seatstatus"`
}
