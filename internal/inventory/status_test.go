package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePassesThroughVocabulary(t *testing.T) {
	assert.Equal(t, StatusFree, Normalize("free"))
	assert.Equal(t, StatusHeld, Normalize("held"))
	assert.Equal(t, StatusSold, Normalize("sold"))
	assert.Equal(t, StatusBooked, Normalize("booked"))
}

func TestNormalizeMapsLegacyHoldSpelling(t *testing.T) {
	assert.Equal(t, StatusHeld, Normalize("hold"))
}

func TestNormalizeDefaultsUnknownToFree(t *testing.T) {
	// Anything outside the vocabulary falls back to free; treating garbage
	// as held or sold would either lock a shopper out or hide contention.
	for _, raw := range []string{"", "FREE", "Held", "reserved", "pending", "held ", "🎟"} {
		assert.Equal(t, StatusFree, Normalize(raw), "raw=%q", raw)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, StatusFree.IsValid())
	assert.True(t, StatusHeld.IsValid())
	assert.True(t, StatusSold.IsValid())
	assert.True(t, StatusBooked.IsValid())

	assert.False(t, Status("hold").IsValid())
	assert.False(t, Status("anything").IsValid())
}

func TestIsRecognized(t *testing.T) {
	assert.True(t, IsRecognized("free"))
	assert.True(t, IsRecognized("hold"))
	assert.False(t, IsRecognized("reserved"))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusSold.IsTerminal())
	assert.False(t, StatusFree.IsTerminal())
	assert.False(t, StatusHeld.IsTerminal())
	assert.False(t, StatusBooked.IsTerminal())
}

func TestCanTransition(t *testing.T) {
	// The full edge set: free<->held, free->sold, held->sold.
	assert.True(t, CanTransition(StatusFree, StatusHeld))
	assert.True(t, CanTransition(StatusFree, StatusSold))
	assert.True(t, CanTransition(StatusHeld, StatusFree))
	assert.True(t, CanTransition(StatusHeld, StatusSold))

	// Sold is terminal and booked has no edges in this flow.
	assert.False(t, CanTransition(StatusSold, StatusFree))
	assert.False(t, CanTransition(StatusSold, StatusHeld))
	assert.False(t, CanTransition(StatusBooked, StatusFree))
	assert.False(t, CanTransition(StatusFree, StatusFree))
}

func TestStatusCountsTotalIncludesBooked(t *testing.T) {
	counts := StatusCounts{Free: 3, Held: 2, Sold: 1, Booked: 4}
	assert.Equal(t, 10, counts.Total())
}
