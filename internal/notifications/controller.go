package notifications

import (
	"io"
	"net/http"

	"boxoffice/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	notifier *Notifier
}

func NewController(notifier *Notifier) *Controller {
	return &Controller{notifier: notifier}
}

// StreamEventChanges streams one event's inventory and price changes as
// server-sent events until the client disconnects. Backs the storefront's
// seat map and the statistics panels.
func (c *Controller) StreamEventChanges(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	if eventID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	ch := c.notifier.Subscribe(eventID)
	defer c.notifier.Unsubscribe(eventID, ch)

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	ctx.Stream(func(w io.Writer) bool {
		select {
		case msg := <-ch:
			ctx.SSEvent(msg.Type, msg)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
