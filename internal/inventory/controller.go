package inventory

import (
	"errors"
	"net/http"

	"boxoffice/internal/events"
	"boxoffice/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetEventInventory(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	if eventID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	inv, err := c.service.LoadInventory(ctx.Request.Context(), eventID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, events.ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to load inventory", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Inventory loaded successfully", inv, nil)
}

func (c *Controller) OverrideUnitStatus(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	unitID := ctx.Param("unitId")
	if eventID == "" || unitID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID and unit ID are required", nil, "missing path parameters")
		return
	}

	var req OverrideStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	status, err := c.service.OverrideUnitStatus(ctx.Request.Context(), eventID, unitID, req.Status)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrUnitNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update unit status", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Unit status updated", gin.H{
		"event_id": eventID,
		"unit_id":  unitID,
		"status":   status,
	}, nil)
}
