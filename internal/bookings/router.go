package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/bookings", controller.Submit) // POST /api/v1/bookings
}

// SetupLegacyRoutes keeps the paths the seat map page posts to
func SetupLegacyRoutes(engine *gin.Engine, controller *Controller) {
	engine.POST("/submit", controller.LegacySubmit) // POST /submit
}

// Request body for POST /api/v1/bookings, one of:
//
//	{"user_code": "U1", "name": "Asha", "mobile": "+91 98765-43210", "seats": [4, 5]}
//	[{...}, {...}]
//	{"bookings": [{...}, {...}]}
//
// name and mobile take a string (comma separated for several people) or a list.
// seats takes a number, a string such as "Seat: 4, Seat: 12", or a list of either.
