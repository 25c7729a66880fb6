package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORS returns an echo middleware that marks every response as readable
// from any origin. The whole point of this proxy is to sit in front of
// upstream APIs that in-experience scripts cannot call directly, so the
// policy is deliberately permissive.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			respHeader := c.Response().Header()
			respHeader.Set("Access-Control-Allow-Origin", "*")
			if c.Request().Method == http.MethodOptions {
				respHeader.Set("Access-Control-Allow-Headers", "*")
				respHeader.Set("Access-Control-Allow-Methods", "OPTIONS, GET, HEAD")
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}
