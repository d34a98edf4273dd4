package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"mediavault/internal/infrastructure/ratelimit"
	"mediavault/pkg/errors"
	"mediavault/pkg/logger"
	"mediavault/pkg/response"
)

// RateLimit throttles requests per client IP.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, wait := limiter.Allow(ip)
			if !ok {
				logger.Warn("Rate limit exceeded for %s", ip)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
			}
			return next(c)
		}
	}
}
