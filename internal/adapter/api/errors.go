package api

import (
	"github.com/labstack/echo/v4"

	"mediavault/pkg/logger"
	"mediavault/pkg/response"
)

// ErrorHandler renders errors that escape handlers (unknown routes, wrong
// methods, middleware failures) with the same body as handler errors.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if rerr := response.Error(c, err); rerr != nil {
		logger.Error("Failed to write error response: %v", rerr)
	}
}
