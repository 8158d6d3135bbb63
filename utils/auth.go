package utils

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/samber/lo"
)

// CreateBearerTokenMiddleware creates a middleware that validates Bearer tokens
func CreateBearerTokenMiddleware(validTokens []string) echo.MiddlewareFunc {
	validTokens = lo.Compact(validTokens)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			if lo.ContainsBy(validTokens, func(valid string) bool {
				return subtle.ConstantTimeCompare([]byte(token), []byte(valid)) == 1
			}) {
				return next(c)
			}

			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
	}
}
