package reconcile

import (
	"boxoffice/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReconcileRoutes(rg *gin.RouterGroup, controller *Controller) {
	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("/events/:eventId/inventory/regenerate", controller.RegenerateInventory)
		admin.GET("/venues/layouts/:layoutId/discrepancies", controller.GetDiscrepancies)
	}
}
