package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "gradebook/internal/errors"
)

// PrincipalContextKey is where the auth gate stores the *service.Principal.
const PrincipalContextKey = "user"

// errorResponse converts a domain error into an echo HTTP error carrying
// an errors.ErrorResponse body.
func errorResponse(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return errorResponse(apperrors.Validation(err.Error()))
	}
	return nil
}
