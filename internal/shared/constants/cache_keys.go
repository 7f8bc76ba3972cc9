package constants

import "time"

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the application
// Pattern: boxoffice:{module}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	// Venue layouts change rarely; admins edit them, nothing else does.
	TTLLayout = 4 * time.Hour

	// Event details sit between the two.
	TTLEvent = 1 * time.Hour

	// Inventory snapshots go stale the moment someone holds a seat, so the
	// cache is only a read accelerator. Every transition deletes the key;
	// the TTL is the backstop for missed invalidations.
	TTLInventory = 30 * time.Second
)

// ================== REDIS KEY PREFIXES ==================

const (
	CachePrefix = "boxoffice"

	cacheKeyInventory = CachePrefix + ":inventory:event:" // + event-id
	cacheKeyLayout    = CachePrefix + ":venues:layout:"   // + layout-id
	cacheKeyEvent     = CachePrefix + ":events:detail:"   // + event-id
)

// ================== HELPER FUNCTIONS ==================

func BuildInventoryKey(eventID string) string {
	return cacheKeyInventory + eventID
}

func BuildLayoutKey(layoutID string) string {
	return cacheKeyLayout + layoutID
}

func BuildEventKey(eventID string) string {
	return cacheKeyEvent + eventID
}
