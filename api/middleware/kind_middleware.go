package middleware

import (
	"net/http"

	"lawconnect/internal/entity"

	"github.com/labstack/echo/v4"
)

// RequireKind gates a route on the account kind carried in the access token.
func RequireKind(kind entity.AccountKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			currentKind, ok := KindFromContext(c)
			if !ok || currentKind != kind {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
