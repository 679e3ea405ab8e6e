package bookings

import (
	"errors"
	"fmt"
	"net/http"

	"seatbook/internal/intake"
	"seatbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Submit handles POST /api/v1/bookings
func (c *Controller) Submit(ctx *gin.Context) {
	groups, ok := c.bindGroups(ctx)
	if !ok {
		return
	}

	result, err := c.service.Submit(ctx.Request.Context(), groups)
	if err != nil {
		_ = ctx.Error(err)
		status, details := describeError(err)
		response.RespondJSON(ctx, response.StatusError, status, "Failed to save booking", nil, details)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusCreated, result.Summary(), SubmitResponse{
		Saved:  len(result.Rows),
		Groups: result.Groups,
		Seats:  result.Seats,
		Rows:   result.Rows,
	}, nil)
}

// LegacySubmit handles POST /submit with the {ok, message} body the seat map page expects
func (c *Controller) LegacySubmit(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, LegacyResponse{OK: false, Message: err.Error()})
		return
	}
	groups, err := intake.ParseGroups(body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, LegacyResponse{OK: false, Message: err.Error()})
		return
	}

	result, err := c.service.Submit(ctx.Request.Context(), groups)
	if err != nil {
		_ = ctx.Error(err)
		status, details := describeError(err)
		ctx.JSON(status, legacyFailure(details))
		return
	}

	ctx.JSON(http.StatusOK, LegacyResponse{OK: true, Message: result.Summary()})
}

func (c *Controller) bindGroups(ctx *gin.Context) ([]intake.Group, bool) {
	body, err := ctx.GetRawData()
	if err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return nil, false
	}
	groups, err := intake.ParseGroups(body)
	if err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return nil, false
	}
	return groups, true
}

// legacyFailure builds the {ok:false} body. Rows saved before the failure are
// listed so the page does not resubmit them.
func legacyFailure(details ErrorDetails) LegacyResponse {
	message := details.Message
	if details.Kind == KindStoreUnavailable {
		message = "Failed to save: " + message
	}

	resp := LegacyResponse{OK: false, Message: message}
	if len(details.CommittedRows) == 0 {
		return resp
	}

	resp.SavedSeats = seatsOf(details.CommittedRows)
	resp.FailedGroup = details.Group
	resp.Message = fmt.Sprintf("Booking partially saved: seat(s) %s saved; booking %d failed: %s",
		joinInts(resp.SavedSeats), details.Group, message)
	return resp
}

func describeError(err error) (int, ErrorDetails) {
	details := ErrorDetails{Message: err.Error()}

	var batchErr *BatchError
	if errors.As(err, &batchErr) {
		details.Group = batchErr.Group + 1
		details.CommittedRows = batchErr.Committed
	}

	var bookingErr *Error
	if !errors.As(err, &bookingErr) {
		return http.StatusInternalServerError, details
	}

	details.Kind = bookingErr.Kind
	details.Message = bookingErr.Error()
	details.Fields = bookingErr.Fields
	details.Mobiles = bookingErr.Mobiles
	details.Seats = bookingErr.Seats
	details.Retryable = bookingErr.Retryable()

	switch bookingErr.Kind {
	case KindMissingField, KindInvalidMobile, KindSeatOutOfRange:
		return http.StatusBadRequest, details
	case KindAmbiguousPairing:
		return http.StatusUnprocessableEntity, details
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable, details
	default:
		return http.StatusInternalServerError, details
	}
}
