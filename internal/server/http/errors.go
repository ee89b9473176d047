package http

import (
	"errors"
	"net/http"

	"github.com/avasiliev/taskkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

// translate maps service errors to HTTP status codes in one place. Every
// token failure collapses to a plain 401: the response never says whether
// the token was malformed, forged or expired.
func translate(err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenMalformed),
		errors.Is(err, common.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorConflict):
		return echo.NewHTTPError(http.StatusConflict, "conflict")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
