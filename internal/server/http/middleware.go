package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/avasiliev/taskkeeper/internal/common"
	"github.com/avasiliev/taskkeeper/internal/server/auth"
	"github.com/labstack/echo/v4"
)

// requireAuth extracts the bearer token from the Authorization header,
// verifies it, and stores the resulting identity on the request context.
// Any failure stops the request with 401; handlers behind this middleware
// can rely on an identity being present.
func (s *HTTPServer) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}

		token, ok := strings.CutPrefix(header, common.BearerSchemePrefix)
		if !ok || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}

		ctx := c.Request().Context()
		identity, err := s.tokens.Validate(ctx, "", token)
		if err != nil {
			s.logger.Warn(ctx, "token rejected", "reason", err.Error())
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}

		c.SetRequest(c.Request().WithContext(auth.WithIdentity(ctx, identity)))
		return next(c)
	}
}

func (s *HTTPServer) logRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			args := []any{
				"method", req.Method,
				"uri", req.RequestURI,
				"route", c.Path(),
				"latency", latency,
				"status", res.Status,
			}
			if err != nil {
				args = append(args, "error", err.Error())
			}
			s.logger.Info(req.Context(), "request handled", args...)
			return err
		}
	}
}
