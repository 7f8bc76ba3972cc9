package reconcile

import (
	"context"
	"testing"

	"boxoffice/internal/events"
	"boxoffice/internal/inventory"
	"boxoffice/internal/venues"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name     string
		declared int
		actual   int
		want     Severity
	}{
		{"exact match", 100, 100, SeverityNone},
		{"zero declared zero actual", 0, 0, SeverityNone},
		{"zero declared with leftovers", 0, 10, SeverityHigh},
		{"small drift", 100, 90, SeverityLow},
		{"drift just under 20 percent", 100, 81, SeverityLow},
		{"drift at 20 percent", 100, 80, SeverityMedium},
		{"drift at 50 percent", 100, 50, SeverityMedium},
		{"drift past 50 percent", 100, 49, SeverityHigh},
		{"all units missing", 100, 0, SeverityHigh},
		{"surplus counts too", 100, 140, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySeverity(tt.declared, tt.actual))
		})
	}
}

func TestUnitsFromLayout(t *testing.T) {
	eventID := uuid.New()
	layout := &venues.LayoutDocument{
		Elements: []venues.Element{
			{Seat: &venues.SeatElement{ID: "A-1", CategoryID: "vip", Section: "A", Row: "1"}},
			{Seat: &venues.SeatElement{ID: "A-2", CategoryID: "vip", Section: "A", Row: "1"}},
			{Zone: &venues.ZoneElement{ID: "ga", CategoryID: "std", Capacity: 3}},
			{Stage: &venues.StageElement{ID: "main"}},
		},
	}

	units := UnitsFromLayout(eventID, layout)
	require.Len(t, units, 5)

	// Seats come through as seat units keyed by their element id.
	assert.Equal(t, inventory.KindSeat, units[0].Kind)
	assert.Equal(t, "A-1", units[0].UnitID)
	assert.Equal(t, "vip", units[0].CategoryID)

	// The zone expands to ordinal units 1..capacity.
	assert.Equal(t, inventory.KindZone, units[2].Kind)
	assert.Equal(t, inventory.ZoneUnitID("ga", 1), units[2].UnitID)
	assert.Equal(t, inventory.ZoneUnitID("ga", 3), units[4].UnitID)

	// Everything starts free.
	for _, unit := range units {
		assert.Equal(t, inventory.StatusFree, unit.Status)
		assert.Equal(t, eventID, unit.EventID)
	}
}

func TestUnitsFromLayoutCapacityOneZoneBecomesSeat(t *testing.T) {
	eventID := uuid.New()
	layout := &venues.LayoutDocument{
		Elements: []venues.Element{
			{Zone: &venues.ZoneElement{ID: "box-1", CategoryID: "vip", Capacity: 1}},
		},
	}

	units := UnitsFromLayout(eventID, layout)
	require.Len(t, units, 1)
	assert.Equal(t, inventory.KindSeat, units[0].Kind)
	assert.Equal(t, "box-1", units[0].UnitID)
}

func TestUnitsFromLayoutMatchesDeclaredCapacity(t *testing.T) {
	eventID := uuid.New()
	layout := &venues.LayoutDocument{
		Elements: []venues.Element{
			{Seat: &venues.SeatElement{ID: "A-1"}},
			{Zone: &venues.ZoneElement{ID: "ga", Capacity: 40}},
			{Zone: &venues.ZoneElement{ID: "pit", Capacity: 12}},
			{Stage: &venues.StageElement{ID: "main"}},
		},
	}

	// Regenerating from a layout must produce exactly its declared
	// capacity, so a regenerate-then-compare cycle reports no drift.
	units := UnitsFromLayout(eventID, layout)
	assert.Equal(t, layout.DeclaredCapacity(), len(units))
	assert.Equal(t, SeverityNone, ClassifySeverity(layout.DeclaredCapacity(), len(units)))
}

func TestUnitsFromLayoutEmptyLayout(t *testing.T) {
	units := UnitsFromLayout(uuid.New(), &venues.LayoutDocument{})
	assert.Empty(t, units)
}

// fakeLayoutRepository serves one stored layout; the real venues service
// sits on top so parse behavior is the production code path.
type fakeLayoutRepository struct {
	layout *venues.VenueLayout
}

func (f *fakeLayoutRepository) CreateLayout(ctx context.Context, layout *venues.VenueLayout) error {
	return nil
}

func (f *fakeLayoutRepository) GetLayoutByID(ctx context.Context, id uuid.UUID) (*venues.VenueLayout, error) {
	if f.layout == nil || f.layout.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.layout, nil
}

func (f *fakeLayoutRepository) GetLayouts(ctx context.Context) ([]venues.VenueLayout, error) {
	return nil, nil
}

func (f *fakeLayoutRepository) UpdateLayout(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (f *fakeLayoutRepository) DeleteLayout(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fakeEventRepository struct {
	event *events.Event
}

func (f *fakeEventRepository) CreateEvent(ctx context.Context, event *events.Event) error {
	return nil
}

func (f *fakeEventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	if f.event == nil || f.event.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.event, nil
}

func (f *fakeEventRepository) GetEvents(ctx context.Context) ([]events.Event, error) {
	return nil, nil
}

func (f *fakeEventRepository) GetEventsByVenueLayoutID(ctx context.Context, layoutID uuid.UUID) ([]events.Event, error) {
	if f.event == nil || f.event.VenueLayoutID == nil || *f.event.VenueLayoutID != layoutID {
		return nil, nil
	}
	return []events.Event{*f.event}, nil
}

func (f *fakeEventRepository) UpdateEvent(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (f *fakeEventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return nil
}

// recordingInventoryRepository records destructive calls so tests can
// assert regeneration never touched the store on a failed parse.
type recordingInventoryRepository struct {
	deleted bool
	created []inventory.InventoryUnit
}

func (f *recordingInventoryRepository) CreateUnits(ctx context.Context, units []inventory.InventoryUnit) error {
	f.created = append(f.created, units...)
	return nil
}

func (f *recordingInventoryRepository) GetUnitsByEventID(ctx context.Context, eventID uuid.UUID) ([]inventory.InventoryUnit, error) {
	return nil, nil
}

func (f *recordingInventoryRepository) GetUnitsByIDs(ctx context.Context, eventID uuid.UUID, unitIDs []string) ([]inventory.InventoryUnit, error) {
	return nil, nil
}

func (f *recordingInventoryRepository) DeleteUnitsByEventID(ctx context.Context, eventID uuid.UUID) error {
	f.deleted = true
	return nil
}

func (f *recordingInventoryRepository) UpdateUnitStatus(ctx context.Context, eventID uuid.UUID, unitID string, status inventory.Status) (bool, error) {
	return false, nil
}

func (f *recordingInventoryRepository) CountUnitsByEventID(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return int64(len(f.created)), nil
}

func (f *recordingInventoryRepository) CountByStatus(ctx context.Context, eventID uuid.UUID) (inventory.StatusCounts, error) {
	return inventory.StatusCounts{Free: len(f.created)}, nil
}

func regenerateFixture(document []byte) (*service, *recordingInventoryRepository, uuid.UUID) {
	layoutID := uuid.New()
	eventID := uuid.New()

	venueService := venues.NewService(&fakeLayoutRepository{
		layout: &venues.VenueLayout{ID: layoutID, Name: "Main Hall", Document: document},
	}, nil)
	eventRepo := &fakeEventRepository{
		event: &events.Event{ID: eventID, Name: "Opening Night", VenueLayoutID: &layoutID},
	}
	invRepo := &recordingInventoryRepository{}

	return NewService(invRepo, eventRepo, venueService), invRepo, eventID
}

func TestRegenerateFailsOnUnparsableLayout(t *testing.T) {
	svc, invRepo, eventID := regenerateFixture([]byte(`{not json`))

	err := svc.Regenerate(context.Background(), eventID.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, venues.ErrLayoutUnparsable)

	// A layout that fails to parse must never reach the destructive part.
	assert.False(t, invRepo.deleted, "existing inventory must survive a failed regenerate")
	assert.Empty(t, invRepo.created)
}

func TestRegenerateReplacesInventoryFromLayout(t *testing.T) {
	svc, invRepo, eventID := regenerateFixture([]byte(`{
		"categories": {"std": {"name": "Standard", "color": "#00f"}},
		"elements": [
			{"type": "seat", "id": "A-1", "categoryId": "std"},
			{"type": "section", "id": "ga", "categoryId": "std", "capacity": 3}
		]
	}`))

	err := svc.Regenerate(context.Background(), eventID.String())
	require.NoError(t, err)
	assert.True(t, invRepo.deleted)
	assert.Len(t, invRepo.created, 4)
}
