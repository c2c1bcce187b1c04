package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"gymstore/internal/auth"
	"gymstore/internal/errors"
	"gymstore/internal/model"
	"gymstore/internal/service"
)

const currentUserKey = "currentUser"

// CurrentUser re-resolves the caller's identity from the session token on
// every request. A user that has been deleted since the token was issued
// gets a 401, which is the implicit session invalidation: the token is
// signed but points at nobody.
func CurrentUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := authService.CurrentUser(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session is no longer valid")
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects callers whose resolved user is not an admin.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := userFromContext(c)
			if user == nil || !user.IsAdmin() {
				httpErr := errors.MapErrorToHTTP(errors.ErrNotAuthorized)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// userFromContext returns the user resolved by the CurrentUser middleware.
func userFromContext(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}
