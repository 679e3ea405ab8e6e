package seats

import (
	"seatbook/internal/shared/config"
	"seatbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {

	// PUBLIC SEAT READS

	seats := rg.Group("/seats")
	{
		seats.GET("/booked", controller.BookedSeats) // GET /api/v1/seats/booked
		seats.GET("/map", controller.SeatMap)        // GET /api/v1/seats/map
	}

	// ADMIN SEAT OPERATIONS

	adminSeats := rg.Group("/admin/seats")
	adminSeats.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminSeats.GET("/report", controller.Report) // GET /api/v1/admin/seats/report
	}
}

// SetupLegacyRoutes keeps the path the seat picker page polls
func SetupLegacyRoutes(engine *gin.Engine, controller *Controller) {
	engine.GET("/booked-seats", controller.LegacyBookedSeats) // GET /booked-seats
}
