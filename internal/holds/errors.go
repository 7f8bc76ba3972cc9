package holds

import "errors"

var (
	// ErrUnitNotFound means the referenced unit does not exist for the
	// event. Structural, unlike plain contention.
	ErrUnitNotFound = errors.New("inventory unit not found")

	// ErrUnitNotHeld means a purchase referenced a unit that was not held.
	// Selling a unit the caller never held would bypass the contention
	// guarantee, so this is an error rather than a silent skip.
	ErrUnitNotHeld = errors.New("inventory unit not held")

	// ErrZoneCapacityExceeded means a zone batch claim asked for more free
	// ordinals than the zone currently has. The claim is all-or-nothing;
	// nothing was held.
	ErrZoneCapacityExceeded = errors.New("not enough free units in zone")

	// ErrTooManyUnits means a request listed more units than the
	// configured per-request cap (HOLD_MAX_UNITS_PER_REQUEST).
	ErrTooManyUnits = errors.New("too many units in one request")
)
