package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shixiaoya/materials/internal/auth"
	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/model"
)

const userIDContextKey = "userID"

// Authorize verifies Bearer token and stores user id in request context
func Authorize(validator *auth.JwtValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHdr := c.Request().Header.Get("Authorization")
			hdrSplit := strings.Split(authHdr, " ")
			if len(hdrSplit) != 2 || !strings.EqualFold(hdrSplit[0], "Bearer") {
				return apperrors.NewUnauthorizedErr("invalid Authorization header format")
			}

			claims, err := validator.Verify(hdrSplit[1])
			if err != nil {
				return apperrors.NewUnauthorizedErr("access token is invalid")
			}

			c.Set(userIDContextKey, claims.Subject)
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

// RequireAdmin rejects requests of non-admin users, must be chained after Authorize
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, _ := c.Get("role").(string); role != string(model.RoleAdmin) {
				return apperrors.NewUnauthorizedErr("insufficient permissions")
			}
			return next(c)
		}
	}
}

// UserID extracts authorized user id from request context
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}
