package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/rocketstore/customers-api/internal/errors"
	"github.com/rocketstore/customers-api/internal/validation"
	"github.com/sirupsen/logrus"
)

func businessErrStatus(code string) int {
	switch code {
	case apperrors.CodeCustomerAlreadyExists:
		return http.StatusConflict
	case apperrors.CodeInvalidID:
		return http.StatusBadRequest
	case apperrors.CodeCustomerDoesntExist:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler maps business errors to response categories by their
// stable code and payload violations to bad request. Any other
// non-http error is treated as infrastructure fault: it is logged with
// full details but leaves the process boundary as generic failure
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var bizErr *apperrors.BusinessErr
		var pldErr *validation.PayloadError
		var httpErr *echo.HTTPError

		switch {
		case errors.As(err, &bizErr):
			err = echo.NewHTTPError(businessErrStatus(bizErr.Code()), bizErr)
		case errors.As(err, &pldErr):
			err = echo.NewHTTPError(http.StatusBadRequest, pldErr)
		case errors.As(err, &httpErr):
		default:
			logrus.Errorf("unexpected error on request processing - %v", err)
			err = echo.NewHTTPError(http.StatusInternalServerError, "operation failed")
		}

		e.DefaultHTTPErrorHandler(err, c)
	}
}
