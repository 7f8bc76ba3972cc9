package inventory

import (
	"boxoffice/pkg/logger"
)

// Status is the closed vocabulary of states an inventory unit can be in.
type Status string

const (
	StatusFree Status = "free"
	StatusHeld Status = "held"
	StatusSold Status = "sold"

	// StatusBooked is a legacy value for units reserved outside the
	// hold/sale flow. It is never produced by this service but may still
	// exist in older rows.
	StatusBooked Status = "booked"
)

// legacyHeldSpelling is a truncated "held" that an older producer wrote
// for a while. Rows carrying it still mean "held".
const legacyHeldSpelling = "hold"

// IsValid reports whether s is a member of the status vocabulary.
func (s Status) IsValid() bool {
	switch s {
	case StatusFree, StatusHeld, StatusSold, StatusBooked:
		return true
	}
	return false
}

// IsTerminal reports whether s admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusSold
}

// Normalize maps a raw status string from storage or the wire onto the
// vocabulary. Known values pass through, the legacy "hold" spelling maps to
// held, and anything else falls back to free with a diagnostic: treating an
// unknown value as held or sold would either lock a shopper out or let a
// contested unit look available, so free is the conservative default.
//
// Every read boundary (repository scans, notification payloads) must go
// through this function; raw values are never trusted.
func Normalize(raw string) Status {
	s := Status(raw)
	if s.IsValid() {
		return s
	}
	if raw == legacyHeldSpelling {
		return StatusHeld
	}
	logger.GetDefault().LogStatusNormalized(raw)
	return StatusFree
}

// IsRecognized reports whether raw would normalize without falling back to
// free. Used by the request validator to reject garbage at the write
// boundary instead of silently collapsing it.
func IsRecognized(raw string) bool {
	return Status(raw).IsValid() || raw == legacyHeldSpelling
}

// CanTransition reports whether the from→to edge exists in the unit state
// machine. Sold is terminal; booked has no edges in this flow.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusFree:
		return to == StatusHeld || to == StatusSold
	case StatusHeld:
		return to == StatusFree || to == StatusSold
	}
	return false
}
