package venues

import (
	"boxoffice/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller) {

	// Layouts are readable by anyone (the storefront renders them)
	venues := rg.Group("/venues")
	{
		venues.GET("/layouts", controller.GetLayouts)
		venues.GET("/layouts/:layoutId", controller.GetLayout)
	}

	// Layout design is an admin concern
	adminVenues := rg.Group("/admin/venues")
	adminVenues.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminVenues.POST("/layouts", controller.CreateLayout)
		adminVenues.PUT("/layouts/:layoutId", controller.UpdateLayout)
		adminVenues.DELETE("/layouts/:layoutId", controller.DeleteLayout)
	}
}
