package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bullyguard/bullyguard/internal/api/middleware"
)

// ctxUserID returns the user id injected by RequireSession. Its absence means
// the route was registered without the middleware.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return userID, nil
}
