// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"boxoffice/internal/events"
	"boxoffice/internal/holds"
	"boxoffice/internal/inventory"
	"boxoffice/internal/notifications"
	"boxoffice/internal/reconcile"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/database"
	"boxoffice/internal/venues"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config         *config.Config
	db             *database.DB
	cacheService   cache.Service
	rateLimiter    *ratelimit.RateLimiter
	changeProducer notifications.ChangeProducer
	notifier       *notifications.Notifier

	// Kept for cross-feature dependency injection
	venueService venues.Service
	eventRepo    events.Repository
	holdService  holds.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
	}
}

// SetCacheService wires the Redis cache. Optional; without it every read
// goes to the store.
func (r *Router) SetCacheService(cacheService cache.Service) {
	r.cacheService = cacheService
}

// SetRateLimiter wires the Redis rate limiter. Optional.
func (r *Router) SetRateLimiter(rateLimiter *ratelimit.RateLimiter) {
	r.rateLimiter = rateLimiter
}

// SetChangeProducer wires the Kafka change producer. Optional; without it
// transitions still commit, they just aren't pushed live.
func (r *Router) SetChangeProducer(producer notifications.ChangeProducer) {
	r.changeProducer = producer
}

// SetNotifier wires the Kafka change notifier. Optional; without it the
// live-updates endpoint is not registered.
func (r *Router) SetNotifier(notifier *notifications.Notifier) {
	r.notifier = notifier
}

// HoldService exposes the hold manager after SetupRoutes, for the
// background sweeper.
func (r *Router) HoldService() holds.Service {
	return r.holdService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Venue routes first: the layout service feeds inventory and
		// reconciliation.
		r.setupVenueRoutes(api)

		// Event routes
		r.setupEventRoutes(api)

		// Hold routes before inventory: reads sweep through the hold
		// manager.
		r.setupHoldRoutes(api)

		// Inventory routes
		r.setupInventoryRoutes(api)

		// Reconciliation routes
		r.setupReconcileRoutes(api)

		// Live updates, only when the change notifier is running
		if r.notifier != nil {
			r.setupNotificationRoutes(api)
		}
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "boxoffice-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "boxoffice-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupVenueRoutes configures venue layout management routes
func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	venueRepo := venues.NewRepository(r.db.GetPostgreSQL())
	venueService := venues.NewService(venueRepo, r.cacheService)
	venueController := venues.NewController(venueService)

	// Store venue service for dependency injection
	r.venueService = venueService

	venues.SetupVenueRoutes(rg, venueController)
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)

	if r.changeProducer != nil {
		eventService.SetPricePublisher(r.changeProducer)
	}

	// Store event repo for dependency injection
	r.eventRepo = eventRepo

	eventController := events.NewController(eventService)
	events.SetupEventRoutes(rg, eventController)
}

// setupHoldRoutes configures hold, release and purchase routes
func (r *Router) setupHoldRoutes(rg *gin.RouterGroup) {
	holdRepo := holds.NewRepository(r.db.GetPostgreSQL())
	holdService := holds.NewService(holdRepo, r.config)

	if r.cacheService != nil {
		holdService.SetCacheService(r.cacheService)
	}
	if r.changeProducer != nil {
		holdService.SetChangePublisher(r.changeProducer)
	}

	// Store hold service for dependency injection
	r.holdService = holdService

	holdController := holds.NewController(holdService, r.config)
	holds.SetupHoldRoutes(rg, holdController, r.rateLimiter)
}

// setupInventoryRoutes configures inventory reader routes
func (r *Router) setupInventoryRoutes(rg *gin.RouterGroup) {
	inventoryRepo := inventory.NewRepository(r.db.GetPostgreSQL())
	inventoryService := inventory.NewService(inventoryRepo, r.eventRepo, r.venueService)

	if r.cacheService != nil {
		inventoryService.SetCacheService(r.cacheService)
	}
	if r.holdService != nil {
		inventoryService.SetSweeper(r.holdService)
	}

	inventoryController := inventory.NewController(inventoryService)
	inventory.SetupInventoryRoutes(rg, inventoryController)
}

// setupNotificationRoutes configures the live-updates stream
func (r *Router) setupNotificationRoutes(rg *gin.RouterGroup) {
	notificationController := notifications.NewController(r.notifier)
	notifications.SetupNotificationRoutes(rg, notificationController)
}

// setupReconcileRoutes configures inventory reconciliation routes
func (r *Router) setupReconcileRoutes(rg *gin.RouterGroup) {
	inventoryRepo := inventory.NewRepository(r.db.GetPostgreSQL())
	reconcileService := reconcile.NewService(inventoryRepo, r.eventRepo, r.venueService)

	if r.cacheService != nil {
		reconcileService.SetCacheService(r.cacheService)
	}

	reconcileController := reconcile.NewController(reconcileService)
	reconcile.SetupReconcileRoutes(rg, reconcileController)
}
