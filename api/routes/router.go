// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatbook/internal/auth"
	"seatbook/internal/bookings"
	"seatbook/internal/notifications"
	"seatbook/internal/qr"
	"seatbook/internal/seats"
	"seatbook/internal/shared/config"
	"seatbook/internal/shared/database"
	"seatbook/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	store     bookings.RecordStore
	publisher notifications.Producer

	seatService seats.Service // invalidated by the booking service
}

// NewRouter creates a new router instance. publisher may be nil.
func NewRouter(cfg *config.Config, db *database.DB, store bookings.RecordStore, publisher notifications.Producer) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		store:     store,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Admin login for the seat report
		r.setupAuthRoutes(api)

		// Seat reads (must be before booking routes for dependency injection)
		r.setupSeatRoutes(engine, api)

		r.setupBookingRoutes(engine, api)

		r.setupQRRoutes(engine, api)
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
				"service":   "seatbook",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatbook",
			"store":     r.config.StoreBackend,
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
			"seat_count":  r.config.Venue.SeatCount,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures admin authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupSeatRoutes configures booked seat reads, the seat map and the admin report
func (r *Router) setupSeatRoutes(engine *gin.Engine, rg *gin.RouterGroup) {
	seatService := seats.NewService(r.store, r.config)
	if redisClient := r.db.GetRedis(); redisClient != nil {
		seatService.SetCacheService(cache.NewService(redisClient))
	}
	seatController := seats.NewController(seatService)

	// Store seat service for dependency injection
	r.seatService = seatService

	seats.SetupSeatRoutes(rg, seatController, r.config)
	seats.SetupLegacyRoutes(engine, seatController)
}

// setupBookingRoutes configures booking submission routes
func (r *Router) setupBookingRoutes(engine *gin.Engine, rg *gin.RouterGroup) {
	bookingService := bookings.NewService(r.store, r.config)

	// Inject seat service so cached booked seats are dropped after a save
	if r.seatService != nil {
		bookingService.SetInvalidator(r.seatService)
	}
	if r.publisher != nil {
		bookingService.SetPublisher(r.publisher)
	}

	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
	bookings.SetupLegacyRoutes(engine, bookingController)
}

// setupQRRoutes configures the venue QR code image
func (r *Router) setupQRRoutes(engine *gin.Engine, rg *gin.RouterGroup) {
	qrController := qr.NewController(qr.NewService(r.config))

	qr.SetupQRRoutes(rg, qrController)
	qr.SetupLegacyRoutes(engine, qrController)
}
