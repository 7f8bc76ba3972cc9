package reconcile

import (
	"boxoffice/internal/inventory"

	"github.com/google/uuid"
)

// Severity classifies how far generated inventory has drifted from the
// layout's declared capacity.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ClassifySeverity buckets the relative difference between declared and
// actual unit counts: none (equal), low (<20%), medium (20–50%), high
// (>50%). A declared capacity of zero with leftover units is maximal drift.
func ClassifySeverity(declared, actual int) Severity {
	if declared == actual {
		return SeverityNone
	}
	if declared == 0 {
		return SeverityHigh
	}

	diff := declared - actual
	if diff < 0 {
		diff = -diff
	}
	ratio := float64(diff) / float64(declared)

	switch {
	case ratio < 0.2:
		return SeverityLow
	case ratio <= 0.5:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

// EventDiscrepancy is the per-event breakdown of a discrepancy report.
type EventDiscrepancy struct {
	EventID    uuid.UUID              `json:"event_id"`
	EventName  string                 `json:"event_name"`
	Declared   int                    `json:"declared_capacity"`
	Actual     int                    `json:"actual_units"`
	Difference int                    `json:"difference"`
	Severity   Severity               `json:"severity"`
	Counts     inventory.StatusCounts `json:"counts"`
}

// DiscrepancyReport compares a venue layout's declared capacity against the
// inventory generated from it, per event and aggregated. Advisory only; it
// never blocks anything.
type DiscrepancyReport struct {
	VenueLayoutID uuid.UUID          `json:"venue_layout_id"`
	Declared      int                `json:"declared_capacity"`
	TotalActual   int                `json:"total_actual_units"`
	Difference    int                `json:"difference"`
	Severity      Severity           `json:"severity"`
	Events        []EventDiscrepancy `json:"events"`
}
