package events

import (
	"boxoffice/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {

	events := rg.Group("/events")
	{
		events.GET("", controller.GetEvents)
		events.GET("/:eventId", controller.GetEvent)
	}

	adminEvents := rg.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)
		adminEvents.PUT("/:eventId/prices", controller.UpdatePriceDocument)
		adminEvents.DELETE("/:eventId", controller.DeleteEvent)
	}
}
