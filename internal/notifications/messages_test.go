package notifications

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeMessageRoundTrip(t *testing.T) {
	original := &ChangeMessage{
		Type: MessageTypeInventoryChange,
		Inventory: &InventoryChange{
			EventID:   "event-1",
			UnitID:    "seat-A1",
			Status:    "held",
			Timestamp: time.Now().UTC().Truncate(time.Second),
		},
	}

	data, err := original.ToJSON()
	require.NoError(t, err)

	decoded, err := ChangeMessageFromJSON(data)
	require.NoError(t, err)
	require.NotNil(t, decoded.Inventory)
	assert.Nil(t, decoded.Price)
	assert.Equal(t, original.Type, decoded.Type)
	assert.Equal(t, original.Inventory.EventID, decoded.Inventory.EventID)
	assert.Equal(t, original.Inventory.Status, decoded.Inventory.Status)
}

func TestChangeMessagePriceCarriesRawDocument(t *testing.T) {
	doc := json.RawMessage(`{"base":42,"categories":{"vip":80}}`)
	original := &ChangeMessage{
		Type:  MessageTypePriceChange,
		Price: &PriceChange{EventID: "event-1", Document: doc, Timestamp: time.Now()},
	}

	data, err := original.ToJSON()
	require.NoError(t, err)

	decoded, err := ChangeMessageFromJSON(data)
	require.NoError(t, err)
	require.NotNil(t, decoded.Price)
	assert.JSONEq(t, string(doc), string(decoded.Price.Document))
}

func TestChangeMessageFromJSONMalformed(t *testing.T) {
	_, err := ChangeMessageFromJSON([]byte(`{truncated`))
	assert.Error(t, err)
}

func TestDispatchNormalizesInventoryStatus(t *testing.T) {
	n := &Notifier{observers: make(map[string][]chan ChangeMessage)}
	ch := n.Subscribe("event-1")

	n.dispatch(ChangeMessage{
		Type: MessageTypeInventoryChange,
		Inventory: &InventoryChange{
			EventID: "event-1",
			UnitID:  "seat-A1",
			Status:  "hold", // legacy spelling off the wire
		},
	})

	select {
	case msg := <-ch:
		assert.Equal(t, "held", msg.Inventory.Status)
	default:
		t.Fatal("expected a dispatched message")
	}
}

func TestDispatchOnlyReachesSubscribedEvent(t *testing.T) {
	n := &Notifier{observers: make(map[string][]chan ChangeMessage)}
	ch := n.Subscribe("event-1")

	n.dispatch(ChangeMessage{
		Type:      MessageTypeInventoryChange,
		Inventory: &InventoryChange{EventID: "event-2", UnitID: "seat-A1", Status: "free"},
	})

	select {
	case <-ch:
		t.Fatal("message for another event must not be delivered")
	default:
	}
}

func TestUnsubscribeRemovesObserver(t *testing.T) {
	n := &Notifier{observers: make(map[string][]chan ChangeMessage)}
	ch := n.Subscribe("event-1")
	n.Unsubscribe("event-1", ch)

	n.dispatch(ChangeMessage{
		Type:      MessageTypeInventoryChange,
		Inventory: &InventoryChange{EventID: "event-1", UnitID: "seat-A1", Status: "free"},
	})

	select {
	case <-ch:
		t.Fatal("unsubscribed channel must not receive messages")
	default:
	}
}
