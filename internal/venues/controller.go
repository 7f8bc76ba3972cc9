package venues

import (
	"net/http"

	"boxoffice/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateLayout(ctx *gin.Context) {
	var req CreateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	layout, err := c.service.CreateLayout(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Layout created successfully", layout, nil)
}

func (c *Controller) GetLayout(ctx *gin.Context) {
	id := ctx.Param("layoutId")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Layout ID is required", nil, "missing layout ID")
		return
	}

	layout, err := c.service.GetLayoutByID(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "layout not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout retrieved successfully", layout, nil)
}

func (c *Controller) GetLayouts(ctx *gin.Context) {
	layouts, err := c.service.GetLayouts(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get layouts", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layouts retrieved successfully", layouts, nil)
}

func (c *Controller) UpdateLayout(ctx *gin.Context) {
	id := ctx.Param("layoutId")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Layout ID is required", nil, "missing layout ID")
		return
	}

	var req UpdateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	layout, err := c.service.UpdateLayout(ctx.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "layout not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout updated successfully", layout, nil)
}

func (c *Controller) DeleteLayout(ctx *gin.Context) {
	id := ctx.Param("layoutId")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Layout ID is required", nil, "missing layout ID")
		return
	}

	if err := c.service.DeleteLayout(ctx.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "layout not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout deleted successfully", nil, nil)
}
