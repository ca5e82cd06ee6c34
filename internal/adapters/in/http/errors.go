package http

import (
	"errors"
	"fmt"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// conflictErrors map to 409: the request was well-formed but the current
// state of the aggregate does not allow it, usually a lost race.
var conflictErrors = []error{
	errs.ErrPreconditionFailed,
	delivery.ErrAlreadyAssigned,
	delivery.ErrAlreadyRated,
	delivery.ErrNotYetDelivered,
	delivery.ErrDeliveryNotActive,
	delivery.ErrInvalidTransition,
	courier.ErrCourierUnavailable,
	courier.ErrCourierDisabled,
	courier.ErrCourierHasActiveDelivery,
	courier.ErrNoMatchingActiveDelivery,
}

// badRequestErrors map to 400: the request itself is invalid.
var badRequestErrors = []error{
	errs.ErrValueIsInvalid,
	errs.ErrValueIsRequired,
	errs.ErrValueIsOutOfRange,
	delivery.ErrNegativeAmount,
	zone.ErrMalformedZone,
	zone.ErrOutsideServiceArea,
	commands.ErrOrderBelowMinimum,
}

// respondError translates domain and application errors into the API's
// uniform error body.
func respondError(ctx echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return ctx.JSON(httpErr.Code, ErrorResponse{
			Code:    httpErr.Code,
			Message: fmt.Sprintf("%v", httpErr.Message),
		})
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	for _, sentinel := range conflictErrors {
		if errors.Is(err, sentinel) {
			return ctx.JSON(http.StatusConflict, ErrorResponse{
				Code:    http.StatusConflict,
				Message: err.Error(),
			})
		}
	}

	for _, sentinel := range badRequestErrors {
		if errors.Is(err, sentinel) {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
		}
	}

	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	})
}
