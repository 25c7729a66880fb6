package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// errorHandler renders every error as the {success:false, error} envelope
// with a real HTTP status code. Invalid input gets a 4xx; anything
// unexpected collapses to a plain 500.
func errorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(http.StatusInternalServerError)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			c.Logger().Error(err)
		}

		if c.Request().Method == http.MethodHead {
			if nerr := c.NoContent(code); nerr != nil {
				c.Logger().Error(nerr)
			}
			return
		}

		if jerr := c.JSON(code, errorResponse{Success: false, Error: message}); jerr != nil {
			c.Logger().Error(jerr)
		}
	}
}
