package holds

import (
	"errors"
	"net/http"
	"time"

	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	config  *config.Config
}

func NewController(service Service, cfg *config.Config) *Controller {
	return &Controller{service: service, config: cfg}
}

func (c *Controller) HoldUnit(ctx *gin.Context) {
	var req HoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	held, err := c.service.Hold(ctx.Request.Context(), req.EventID, req.UnitID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrUnitNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to hold unit", nil, err.Error())
		return
	}

	if !held {
		// Contention, not a fault: the unit went to someone else.
		response.RespondJSON(ctx, "success", http.StatusConflict, "Unit no longer available", HoldResponse{
			Held:    false,
			EventID: req.EventID,
			UnitID:  req.UnitID,
		}, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Unit held successfully", HoldResponse{
		Held:      true,
		EventID:   req.EventID,
		UnitID:    req.UnitID,
		ExpiresAt: time.Now().Add(c.config.Hold.TTL),
		TTL:       int(c.config.Hold.TTL.Seconds()),
	}, nil)
}

func (c *Controller) HoldInZone(ctx *gin.Context) {
	var req ZoneHoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	unitIDs, err := c.service.HoldInZone(ctx.Request.Context(), req.EventID, req.ZoneID, req.Quantity)
	if err != nil {
		if errors.Is(err, ErrTooManyUnits) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Too many units requested", nil, err.Error())
			return
		}
		if errors.Is(err, ErrZoneCapacityExceeded) {
			response.RespondJSON(ctx, "success", http.StatusConflict, "Not enough free units in zone", HoldResponse{
				Held:    false,
				EventID: req.EventID,
			}, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to hold zone units", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Zone units held successfully", HoldResponse{
		Held:      true,
		EventID:   req.EventID,
		UnitIDs:   unitIDs,
		ExpiresAt: time.Now().Add(c.config.Hold.TTL),
		TTL:       int(c.config.Hold.TTL.Seconds()),
	}, nil)
}

func (c *Controller) ReleaseUnits(ctx *gin.Context) {
	var req ReleaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if err := c.service.Release(ctx.Request.Context(), req.EventID, req.UnitIDs); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrTooManyUnits) {
			statusCode = http.StatusBadRequest
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to release units", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Units released successfully", nil, nil)
}

func (c *Controller) PurchaseUnits(ctx *gin.Context) {
	var req PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if err := c.service.Purchase(ctx.Request.Context(), req.EventID, req.UnitIDs); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrUnitNotHeld) {
			statusCode = http.StatusConflict
		}
		if errors.Is(err, ErrTooManyUnits) {
			statusCode = http.StatusBadRequest
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to purchase units", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Units purchased successfully", nil, nil)
}

func (c *Controller) Sweep(ctx *gin.Context) {
	count, err := c.service.SweepExpired(ctx.Request.Context(), time.Now())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to sweep expired holds", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Sweep completed", SweepResponse{Released: count}, nil)
}
