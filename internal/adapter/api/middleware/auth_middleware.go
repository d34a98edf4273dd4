package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"mediavault/internal/infrastructure/auth"
	"mediavault/pkg/errors"
	"mediavault/pkg/response"
)

// TokenVerifier resolves a bearer token to its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware returns nil when verifier is nil; a nil *AuthMiddleware
// lets every request through.
func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	if verifier == nil {
		return nil
	}
	return &AuthMiddleware{verifier: verifier}
}

// ProtectWrites requires a bearer token on every method except GET, HEAD and OPTIONS.
func (m *AuthMiddleware) ProtectWrites(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m == nil {
			return next(c)
		}
		switch c.Request().Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return next(c)
		}
		return m.Authenticate(next)(c)
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m == nil {
			return next(c)
		}

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		subject, err := m.verifier.Verify(parts[1])
		if err != nil {
			return response.Error(c, errors.Unauthorized(auth.ErrInvalidToken.Error(), err))
		}

		c.Set("uid", subject)
		return next(c)
	}
}
