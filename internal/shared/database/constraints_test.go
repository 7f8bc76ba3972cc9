package database

import (
	"reflect"
	"strings"
	"testing"

	"boxoffice/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintStatementsAreRerunnable(t *testing.T) {
	require.NotEmpty(t, constraintStatements)

	for _, stmt := range constraintStatements {
		normalized := strings.Join(strings.Fields(stmt), " ")

		assert.True(t, strings.HasPrefix(normalized, "CREATE INDEX IF NOT EXISTS"),
			"statement must be idempotent: %s", normalized)

		// Postgres accepts IF NOT EXISTS for ADD COLUMN only; an ADD
		// CONSTRAINT here would fail every boot.
		assert.NotContains(t, normalized, "ADD CONSTRAINT")
	}
}

func TestUnitUniquenessDeclaredOnModel(t *testing.T) {
	// The conditional status updates assume one row per (event, unit);
	// AutoMigrate creates the composite unique index from these tags.
	typ := reflect.TypeOf(inventory.InventoryUnit{})

	eventID, ok := typ.FieldByName("EventID")
	require.True(t, ok)
	unitID, ok := typ.FieldByName("UnitID")
	require.True(t, ok)

	assert.Contains(t, eventID.Tag.Get("gorm"), "uniqueIndex:idx_event_unit")
	assert.Contains(t, unitID.Tag.Get("gorm"), "uniqueIndex:idx_event_unit")
}
