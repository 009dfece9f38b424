package devserver

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/genius-wizard-dev/storefront/internal/common"
)

const userIDKey = "userID"

// requireAuth admits requests carrying a valid bearer token and records
// the caller's user id.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := strings.CutPrefix(c.Request().Header.Get(common.AuthorizationHeader), common.BearerPrefix)
		if !ok || raw == "" {
			return common.ErrInvalidToken
		}

		claims, err := s.tokens.Verify(raw)
		if err != nil {
			return err
		}

		c.Set(userIDKey, claims.Subject)
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				s.log.Warn(ctx, "http request failed", append(args, "error", v.Error.Error())...)
				return nil
			}
			s.log.Info(ctx, "http request", args...)
			return nil
		},
	})
}
