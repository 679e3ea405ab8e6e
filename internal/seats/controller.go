package seats

import (
	"net/http"

	"seatbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// BookedSeats handles GET /api/v1/seats/booked
func (c *Controller) BookedSeats(ctx *gin.Context) {
	booked, err := c.service.BookedSeats(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		response.RespondJSON(ctx, response.StatusError, http.StatusServiceUnavailable, "Failed to get booked seats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Booked seats retrieved successfully", BookedResponse{Booked: booked}, nil)
}

// LegacyBookedSeats handles GET /booked-seats. The seat picker treats any
// error as "nothing booked", so failures still answer 200.
func (c *Controller) LegacyBookedSeats(ctx *gin.Context) {
	booked, err := c.service.BookedSeats(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusOK, BookedResponse{Booked: []int{}, Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, BookedResponse{Booked: booked})
}

// SeatMap handles GET /api/v1/seats/map
func (c *Controller) SeatMap(ctx *gin.Context) {
	seatMap, err := c.service.SeatMap(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		response.RespondJSON(ctx, response.StatusError, http.StatusServiceUnavailable, "Failed to build seat map", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}

// Report handles GET /api/v1/admin/seats/report
func (c *Controller) Report(ctx *gin.Context) {
	report, err := c.service.Report(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		response.RespondJSON(ctx, response.StatusError, http.StatusServiceUnavailable, "Failed to build seat report", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Seat report generated successfully", report, nil)
}
