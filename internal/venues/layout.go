package venues

import (
	"encoding/json"
	"fmt"
)

// Element types found in a layout document.
const (
	ElementTypeSeat    = "seat"
	ElementTypeSection = "section"
	ElementTypePolygon = "polygon"
	ElementTypeStage   = "stage"
)

// Category is a venue-scoped pricing/display grouping referenced by
// elements.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Element is the tagged union of layout element variants. Exactly one of
// Seat, Zone, Stage is non-nil, discriminated by the document's "type"
// field.
type Element struct {
	Seat  *SeatElement
	Zone  *ZoneElement
	Stage *StageElement
}

// SeatElement is a single bookable seat.
type SeatElement struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Section    string `json:"section"`
	Row        string `json:"row"`
}

// ZoneElement is a capacity-bearing section or polygon holding
// interchangeable general-admission units.
type ZoneElement struct {
	ID         string `json:"id"`
	Type       string `json:"type"` // section or polygon
	CategoryID string `json:"categoryId"`
	Capacity   int    `json:"capacity"`
}

// StageElement is decoration; it carries no bookable capacity.
type StageElement struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// UnmarshalJSON decodes one element into its variant by the "type"
// discriminator.
func (e *Element) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Type {
	case ElementTypeSeat:
		var seat SeatElement
		if err := json.Unmarshal(data, &seat); err != nil {
			return err
		}
		e.Seat = &seat
	case ElementTypeSection, ElementTypePolygon:
		var zone ZoneElement
		if err := json.Unmarshal(data, &zone); err != nil {
			return err
		}
		if zone.Capacity < 1 {
			return fmt.Errorf("zone element %q has capacity %d, want >= 1", zone.ID, zone.Capacity)
		}
		e.Zone = &zone
	case ElementTypeStage:
		var stage StageElement
		if err := json.Unmarshal(data, &stage); err != nil {
			return err
		}
		e.Stage = &stage
	default:
		return fmt.Errorf("unknown layout element type: %q", probe.Type)
	}
	return nil
}

// MarshalJSON re-encodes the active variant with its discriminator.
func (e Element) MarshalJSON() ([]byte, error) {
	switch {
	case e.Seat != nil:
		return json.Marshal(struct {
			Type string `json:"type"`
			*SeatElement
		}{ElementTypeSeat, e.Seat})
	case e.Zone != nil:
		elemType := e.Zone.Type
		if elemType == "" {
			elemType = ElementTypeSection
		}
		return json.Marshal(struct {
			Type string `json:"type"`
			ID   string `json:"id"`
			CategoryID string `json:"categoryId"`
			Capacity   int    `json:"capacity"`
		}{elemType, e.Zone.ID, e.Zone.CategoryID, e.Zone.Capacity})
	case e.Stage != nil:
		return json.Marshal(struct {
			Type string `json:"type"`
			*StageElement
		}{ElementTypeStage, e.Stage})
	}
	return nil, fmt.Errorf("element has no variant set")
}

// Capacity returns the bookable capacity this element contributes.
func (e Element) Capacity() int {
	switch {
	case e.Seat != nil:
		return 1
	case e.Zone != nil:
		return e.Zone.Capacity
	}
	return 0
}

// LayoutDocument is the parsed form of a venue layout's JSON document.
type LayoutDocument struct {
	Elements   []Element           `json:"elements"`
	Categories map[string]Category `json:"categories"`
}

// ParseLayoutDocument decodes and validates a raw layout document. Elements
// must reference declared categories; the category vocabulary is closed per
// venue.
func ParseLayoutDocument(raw []byte) (*LayoutDocument, error) {
	if len(raw) == 0 {
		return &LayoutDocument{Categories: map[string]Category{}}, nil
	}

	var doc LayoutDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse layout document: %w", err)
	}
	if doc.Categories == nil {
		doc.Categories = map[string]Category{}
	}

	for _, elem := range doc.Elements {
		categoryID := ""
		switch {
		case elem.Seat != nil:
			categoryID = elem.Seat.CategoryID
		case elem.Zone != nil:
			categoryID = elem.Zone.CategoryID
		}
		if categoryID == "" {
			continue
		}
		if _, ok := doc.Categories[categoryID]; !ok {
			return nil, fmt.Errorf("element references unknown category: %q", categoryID)
		}
	}

	return &doc, nil
}

// DeclaredCapacity sums the bookable capacity of every element. This is the
// number the reconciler checks generated inventory against.
func (d *LayoutDocument) DeclaredCapacity() int {
	total := 0
	for _, elem := range d.Elements {
		total += elem.Capacity()
	}
	return total
}

// Empty reports whether the layout declares no bookable elements
// (general-admission mode for events without a venue).
func (d *LayoutDocument) Empty() bool {
	return d == nil || len(d.Elements) == 0
}
