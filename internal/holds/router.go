package holds

import (
	"boxoffice/internal/shared/middleware"
	"boxoffice/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

func SetupHoldRoutes(rg *gin.RouterGroup, controller *Controller, limiter *ratelimit.RateLimiter) {

	// Seat selection flow. Rate limited: these endpoints take the brunt of
	// on-sale contention.
	h := rg.Group("/holds")
	if limiter != nil {
		h.Use(ratelimit.MiddlewareWithType(limiter, ratelimit.RateLimitTypeHold))
	}
	{
		h.POST("", controller.HoldUnit)
		h.POST("/zone", controller.HoldInZone)
		h.DELETE("", controller.ReleaseUnits)
	}

	purchases := rg.Group("/purchases")
	if limiter != nil {
		purchases.Use(ratelimit.MiddlewareWithType(limiter, ratelimit.RateLimitTypeHold))
	}
	{
		purchases.POST("", controller.PurchaseUnits)
	}

	// Manual sweep for operators; the background sweeper and page-load
	// sweeps make this rarely necessary.
	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("/sweep", controller.Sweep)
	}
}
