package qr

import (
	"errors"
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

// PNG handles GET /qr?path=/seat-map
func (c *Controller) PNG(ctx *gin.Context) {
	png, err := c.service.PNG(ctx.Query("path"))
	if err != nil {
		_ = ctx.Error(err)
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidPath) {
			statusCode = http.StatusBadRequest
		}
		response.RespondJSON(ctx, response.StatusError, statusCode, "Failed to generate QR code", nil, err.Error())
		return
	}

	ctx.Header("Cache-Control", "public, max-age=3600")
	ctx.Data(http.StatusOK, "image/png", png)
}
