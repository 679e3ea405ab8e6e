package auth

import (
	"errors"
	"net/http"

	"seatbook/internal/shared/utils/response"
	"seatbook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// Login handles POST /api/v1/auth/admin/login
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			logger.GetDefault().LogAuthFailure(ctx.Request.Context(), "invalid admin credentials", ctx.ClientIP())
			response.RespondJSON(ctx, response.StatusError, http.StatusUnauthorized, "Invalid username or password", nil, nil)
		case errors.Is(err, ErrAdminDisabled):
			response.RespondJSON(ctx, response.StatusError, http.StatusServiceUnavailable, "Admin login is not configured", nil, nil)
		default:
			response.RespondJSON(ctx, response.StatusError, http.StatusInternalServerError, "Failed to log in", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Login successful", resp, nil)
}

// Me handles GET /api/v1/auth/me
func (c *Controller) Me(ctx *gin.Context) {
	userID, _ := ctx.Get("user_id")
	role, _ := ctx.Get("user_role")

	username, _ := userID.(string)
	roleName, _ := role.(string)

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Token is valid", MeResponse{
		Username: username,
		Role:     roleName,
	}, nil)
}
