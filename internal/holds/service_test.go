package holds

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"boxoffice/internal/inventory"
	"boxoffice/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository implements Repository in memory with the same
// compare-and-set semantics the store provides: every transition checks the
// current status under one lock.
type fakeRepository struct {
	mu    sync.Mutex
	units map[string]*fakeUnit
}

type fakeUnit struct {
	eventID   uuid.UUID
	unitID    string
	zoneID    string
	ordinal   int
	status    inventory.Status
	updatedAt time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{units: make(map[string]*fakeUnit)}
}

func (f *fakeRepository) key(eventID uuid.UUID, unitID string) string {
	return eventID.String() + "|" + unitID
}

func (f *fakeRepository) addSeat(eventID uuid.UUID, unitID string, status inventory.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.units[f.key(eventID, unitID)] = &fakeUnit{
		eventID:   eventID,
		unitID:    unitID,
		status:    status,
		updatedAt: time.Now(),
	}
}

func (f *fakeRepository) addZone(eventID uuid.UUID, zoneID string, capacity int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ordinal := 1; ordinal <= capacity; ordinal++ {
		unitID := inventory.ZoneUnitID(zoneID, ordinal)
		f.units[f.key(eventID, unitID)] = &fakeUnit{
			eventID:   eventID,
			unitID:    unitID,
			zoneID:    zoneID,
			ordinal:   ordinal,
			status:    inventory.StatusFree,
			updatedAt: time.Now(),
		}
	}
}

func (f *fakeRepository) setUpdatedAt(eventID uuid.UUID, unitID string, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.units[f.key(eventID, unitID)].updatedAt = at
}

func (f *fakeRepository) status(eventID uuid.UUID, unitID string) inventory.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.units[f.key(eventID, unitID)].status
}

func (f *fakeRepository) TransitionUnit(ctx context.Context, eventID uuid.UUID, unitID string, from, to inventory.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	unit, ok := f.units[f.key(eventID, unitID)]
	if !ok || unit.status != from {
		return false, nil
	}
	unit.status = to
	unit.updatedAt = time.Now()
	return true, nil
}

func (f *fakeRepository) TransitionUnits(ctx context.Context, eventID uuid.UUID, unitIDs []string, from, to inventory.Status) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var changed []string
	for _, unitID := range unitIDs {
		unit, ok := f.units[f.key(eventID, unitID)]
		if !ok || unit.status != from {
			continue
		}
		unit.status = to
		unit.updatedAt = time.Now()
		changed = append(changed, unitID)
	}
	return changed, nil
}

func (f *fakeRepository) ClaimZoneUnits(ctx context.Context, eventID uuid.UUID, zoneID string, quantity int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var free []*fakeUnit
	for _, unit := range f.units {
		if unit.eventID == eventID && unit.zoneID == zoneID && unit.status == inventory.StatusFree {
			free = append(free, unit)
		}
	}
	if len(free) < quantity {
		return nil, ErrZoneCapacityExceeded
	}

	sort.Slice(free, func(i, j int) bool { return free[i].ordinal < free[j].ordinal })

	var claimed []string
	for _, unit := range free[:quantity] {
		unit.status = inventory.StatusHeld
		unit.updatedAt = time.Now()
		claimed = append(claimed, unit.unitID)
	}
	return claimed, nil
}

func (f *fakeRepository) ReleaseExpired(ctx context.Context, cutoff time.Time) ([]ExpiredUnit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var expired []ExpiredUnit
	for _, unit := range f.units {
		if unit.status == inventory.StatusHeld && unit.updatedAt.Before(cutoff) {
			unit.status = inventory.StatusFree
			unit.updatedAt = time.Now()
			expired = append(expired, ExpiredUnit{EventID: unit.eventID, UnitID: unit.unitID})
		}
	}
	return expired, nil
}

func (f *fakeRepository) GetUnitStatuses(ctx context.Context, eventID uuid.UUID, unitIDs []string) (map[string]inventory.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	statuses := make(map[string]inventory.Status)
	for _, unitID := range unitIDs {
		if unit, ok := f.units[f.key(eventID, unitID)]; ok {
			statuses[unitID] = unit.status
		}
	}
	return statuses, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Hold: config.HoldConfig{
			TTL:                10 * time.Minute,
			SweepInterval:      time.Minute,
			MaxUnitsPerRequest: 10,
		},
	}
}

func TestHoldTransitionsFreeUnit(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addSeat(eventID, "seat-1", inventory.StatusFree)

	svc := NewService(repo, testConfig())

	held, err := svc.Hold(context.Background(), eventID.String(), "seat-1")
	require.NoError(t, err)
	assert.True(t, held)
	assert.Equal(t, inventory.StatusHeld, repo.status(eventID, "seat-1"))
}

func TestHoldContentionIsNotAnError(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addSeat(eventID, "seat-1", inventory.StatusHeld)

	svc := NewService(repo, testConfig())

	held, err := svc.Hold(context.Background(), eventID.String(), "seat-1")
	require.NoError(t, err)
	assert.False(t, held)
}

func TestHoldMissingUnit(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()

	svc := NewService(repo, testConfig())

	_, err := svc.Hold(context.Background(), eventID.String(), "no-such-seat")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestHoldAtMostOneHolder(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addSeat(eventID, "seat-1", inventory.StatusFree)

	svc := NewService(repo, testConfig())

	const shoppers = 50
	var wg sync.WaitGroup
	results := make([]bool, shoppers)

	for i := 0; i < shoppers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			held, err := svc.Hold(context.Background(), eventID.String(), "seat-1")
			assert.NoError(t, err)
			results[i] = held
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, held := range results {
		if held {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, inventory.StatusHeld, repo.status(eventID, "seat-1"))
}

func TestReleaseIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addSeat(eventID, "seat-1", inventory.StatusHeld)

	svc := NewService(repo, testConfig())

	require.NoError(t, svc.Release(context.Background(), eventID.String(), []string{"seat-1"}))
	assert.Equal(t, inventory.StatusFree, repo.status(eventID, "seat-1"))

	// Releasing again, and releasing a unit that was never held, are no-ops.
	require.NoError(t, svc.Release(context.Background(), eventID.String(), []string{"seat-1"}))
	assert.Equal(t, inventory.StatusFree, repo.status(eventID, "seat-1"))
}

func TestReleaseDoesNotResurrectSoldUnits(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addSeat(eventID, "seat-1", inventory.StatusSold)

	svc := NewService(repo, testConfig())

	require.NoError(t, svc.Release(context.Background(), eventID.String(), []string{"seat-1"}))
	assert.Equal(t, inventory.StatusSold, repo.status(eventID, "seat-1"))
}

func TestPurchaseConvertsHeldUnits(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addSeat(eventID, "seat-1", inventory.StatusHeld)
	repo.addSeat(eventID, "seat-2", inventory.StatusHeld)

	svc := NewService(repo, testConfig())

	require.NoError(t, svc.Purchase(context.Background(), eventID.String(), []string{"seat-1", "seat-2"}))
	assert.Equal(t, inventory.StatusSold, repo.status(eventID, "seat-1"))
	assert.Equal(t, inventory.StatusSold, repo.status(eventID, "seat-2"))
}

func TestPurchaseRequiresHeldStatus(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addSeat(eventID, "seat-1", inventory.StatusHeld)
	repo.addSeat(eventID, "seat-2", inventory.StatusFree)

	svc := NewService(repo, testConfig())

	err := svc.Purchase(context.Background(), eventID.String(), []string{"seat-1", "seat-2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnitNotHeld)

	// Units converted before the failure stay sold.
	assert.Equal(t, inventory.StatusSold, repo.status(eventID, "seat-1"))
	assert.Equal(t, inventory.StatusFree, repo.status(eventID, "seat-2"))
}

func TestSweepExpiredBoundary(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	cfg := testConfig()
	now := time.Now()

	// One hold just inside the TTL, one just past it.
	repo.addSeat(eventID, "fresh", inventory.StatusHeld)
	repo.setUpdatedAt(eventID, "fresh", now.Add(-cfg.Hold.TTL+time.Second))

	repo.addSeat(eventID, "stale", inventory.StatusHeld)
	repo.setUpdatedAt(eventID, "stale", now.Add(-cfg.Hold.TTL-time.Second))

	svc := NewService(repo, cfg)

	count, err := svc.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, inventory.StatusHeld, repo.status(eventID, "fresh"))
	assert.Equal(t, inventory.StatusFree, repo.status(eventID, "stale"))
}

func TestSweepNeverTouchesSoldUnits(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	cfg := testConfig()
	now := time.Now()

	repo.addSeat(eventID, "sold-long-ago", inventory.StatusSold)
	repo.setUpdatedAt(eventID, "sold-long-ago", now.Add(-24*time.Hour))

	svc := NewService(repo, cfg)

	count, err := svc.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, inventory.StatusSold, repo.status(eventID, "sold-long-ago"))
}

func TestHoldInZoneClaimsLowestOrdinals(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addZone(eventID, "ga-floor", 5)

	svc := NewService(repo, testConfig())

	claimed, err := svc.HoldInZone(context.Background(), eventID.String(), "ga-floor", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{
		inventory.ZoneUnitID("ga-floor", 1),
		inventory.ZoneUnitID("ga-floor", 2),
		inventory.ZoneUnitID("ga-floor", 3),
	}, claimed)
}

func TestHoldInZoneAllOrNothing(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addZone(eventID, "ga-floor", 3)

	svc := NewService(repo, testConfig())

	_, err := svc.HoldInZone(context.Background(), eventID.String(), "ga-floor", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZoneCapacityExceeded)

	// Nothing was claimed.
	for ordinal := 1; ordinal <= 3; ordinal++ {
		unitID := inventory.ZoneUnitID("ga-floor", ordinal)
		assert.Equal(t, inventory.StatusFree, repo.status(eventID, unitID))
	}
}

func TestHoldInZoneConcurrentClaims(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addZone(eventID, "ga-floor", 50)

	svc := NewService(repo, testConfig())

	// Ten groups of five exactly fill the zone; every claim must succeed
	// and no two may share a unit.
	const groups = 10
	var wg sync.WaitGroup
	claims := make([][]string, groups)

	for i := 0; i < groups; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			claimed, err := svc.HoldInZone(context.Background(), eventID.String(), "ga-floor", 5)
			assert.NoError(t, err)
			claims[i] = claimed
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, claimed := range claims {
		require.Len(t, claimed, 5)
		for _, unitID := range claimed {
			assert.False(t, seen[unitID], "unit %s claimed twice", unitID)
			seen[unitID] = true
		}
	}
	assert.Len(t, seen, 50)

	// The zone is now exhausted.
	_, err := svc.HoldInZone(context.Background(), eventID.String(), "ga-floor", 1)
	assert.ErrorIs(t, err, ErrZoneCapacityExceeded)
}

func TestHoldInZoneRejectsNonPositiveQuantity(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addZone(eventID, "ga-floor", 5)

	svc := NewService(repo, testConfig())

	_, err := svc.HoldInZone(context.Background(), eventID.String(), "ga-floor", 0)
	assert.Error(t, err)
}

func TestHoldThenExpireThenHoldAgain(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	cfg := testConfig()
	repo.addSeat(eventID, "seat-1", inventory.StatusFree)

	svc := NewService(repo, cfg)
	ctx := context.Background()

	held, err := svc.Hold(ctx, eventID.String(), "seat-1")
	require.NoError(t, err)
	require.True(t, held)

	// Age the hold past TTL and sweep: the unit comes back.
	repo.setUpdatedAt(eventID, "seat-1", time.Now().Add(-cfg.Hold.TTL-time.Minute))
	count, err := svc.SweepExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	held, err = svc.Hold(ctx, eventID.String(), "seat-1")
	require.NoError(t, err)
	assert.True(t, held)
}

func TestInvalidEventIDRejected(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	_, err := svc.Hold(ctx, "not-a-uuid", "seat-1")
	assert.Error(t, err)

	_, err = svc.HoldInZone(ctx, "not-a-uuid", "ga-floor", 2)
	assert.Error(t, err)

	err = svc.Release(ctx, "not-a-uuid", []string{"seat-1"})
	assert.Error(t, err)

	err = svc.Purchase(ctx, "not-a-uuid", []string{"seat-1"})
	assert.Error(t, err)
}

var _ Repository = (*fakeRepository)(nil)

func TestReleaseEmptyListIsNoop(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	require.NoError(t, svc.Release(context.Background(), uuid.New().String(), nil))
}

func TestPurchaseEmptyListFails(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	err := svc.Purchase(context.Background(), uuid.New().String(), nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnitNotHeld)
}

func TestHoldInZoneRejectsOversizeQuantity(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	repo.addZone(eventID, "ga", 50)
	svc := NewService(repo, testConfig())

	_, err := svc.HoldInZone(context.Background(), eventID.String(), "ga", 11)
	assert.ErrorIs(t, err, ErrTooManyUnits)

	// Nothing claimed: the cap check runs before the store is touched.
	statuses, err := repo.GetUnitStatuses(context.Background(), eventID, []string{inventory.ZoneUnitID("ga", 1)})
	require.NoError(t, err)
	assert.Equal(t, inventory.StatusFree, statuses[inventory.ZoneUnitID("ga", 1)])
}

func TestReleaseRejectsOversizeUnitList(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	svc := NewService(repo, testConfig())

	unitIDs := make([]string, 11)
	for i := range unitIDs {
		unitIDs[i] = fmt.Sprintf("seat-%d", i)
	}

	err := svc.Release(context.Background(), eventID.String(), unitIDs)
	assert.ErrorIs(t, err, ErrTooManyUnits)
}

func TestPurchaseRejectsOversizeUnitList(t *testing.T) {
	repo := newFakeRepository()
	eventID := uuid.New()
	svc := NewService(repo, testConfig())

	unitIDs := make([]string, 11)
	for i := range unitIDs {
		unitIDs[i] = fmt.Sprintf("seat-%d", i)
	}

	err := svc.Purchase(context.Background(), eventID.String(), unitIDs)
	assert.ErrorIs(t, err, ErrTooManyUnits)
}
