package middleware

import (
	"time"

	"github.com/calltechcare/backend-go/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs every request with method, path, status, latency and
// client IP.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			logger.Log.Info("Request completed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.String("ip", c.RealIP()),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}
