package notifications

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sseRecorder adds the CloseNotify method gin's stream helper requires and
// guards the body so the test can read it while the handler streams.
type sseRecorder struct {
	*httptest.ResponseRecorder
	mu     sync.Mutex
	closed chan bool
}

func newSSERecorder() *sseRecorder {
	return &sseRecorder{
		ResponseRecorder: httptest.NewRecorder(),
		closed:           make(chan bool, 1),
	}
}

func (r *sseRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func (r *sseRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Write(p)
}

func (r *sseRecorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ResponseRecorder.Flush()
}

func (r *sseRecorder) bodyString() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Body.String()
}

func TestStreamEventChangesDeliversUpdates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	n := &Notifier{observers: make(map[string][]chan ChangeMessage)}
	engine := gin.New()
	SetupNotificationRoutes(engine.Group("/api/v1"), NewController(n))

	reqCtx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/event-1/live", nil).WithContext(reqCtx)
	recorder := newSSERecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		engine.ServeHTTP(recorder, req)
	}()

	// Wait for the handler to register its observer before publishing.
	require.Eventually(t, func() bool {
		n.mu.RLock()
		defer n.mu.RUnlock()
		return len(n.observers["event-1"]) == 1
	}, time.Second, 5*time.Millisecond)

	n.dispatch(ChangeMessage{
		Type: MessageTypeInventoryChange,
		Inventory: &InventoryChange{
			EventID: "event-1",
			UnitID:  "seat-A1",
			Status:  "hold", // legacy spelling off the wire
		},
	})

	// Wait for the event to reach the stream, then disconnect the client.
	require.Eventually(t, func() bool {
		return len(recorder.bodyString()) > 0
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not return after client disconnect")
	}

	assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))
	body := recorder.bodyString()
	assert.Contains(t, body, MessageTypeInventoryChange)
	assert.Contains(t, body, "seat-A1")
	assert.Contains(t, body, `"status":"held"`)

	// The handler unsubscribes on the way out.
	n.mu.RLock()
	defer n.mu.RUnlock()
	assert.Empty(t, n.observers["event-1"])
}
