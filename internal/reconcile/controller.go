package reconcile

import (
	"errors"
	"net/http"

	"boxoffice/internal/events"
	"boxoffice/internal/shared/utils/response"
	"boxoffice/internal/venues"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

type regenerateRequest struct {
	// Regeneration wipes holds and sales for the event; the admin UI asks
	// for explicit confirmation and passes it through.
	Confirm bool `json:"confirm" binding:"required"`
}

func (c *Controller) RegenerateInventory(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	if eventID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	var req regenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || !req.Confirm {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Regeneration must be confirmed", nil, "confirm flag not set")
		return
	}

	if err := c.service.Regenerate(ctx.Request.Context(), eventID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, events.ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		if errors.Is(err, venues.ErrLayoutUnparsable) {
			statusCode = http.StatusUnprocessableEntity
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to regenerate inventory", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Inventory regenerated successfully", nil, nil)
}

func (c *Controller) GetDiscrepancies(ctx *gin.Context) {
	layoutID := ctx.Param("layoutId")
	if layoutID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Layout ID is required", nil, "missing layout ID")
		return
	}

	report, err := c.service.Compare(ctx.Request.Context(), layoutID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to compare inventory", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Discrepancy report generated", report, nil)
}
