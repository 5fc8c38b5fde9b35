package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bullyguard/bullyguard/internal/session"
)

// UserIDKey is the echo.Context key RequireSession stores the user id under.
const UserIDKey = "user_id"

// SessionReader resolves the current request's session.
type SessionReader interface {
	Current(c echo.Context) (string, error)
}

// RequireSession redirects requests without a live session to /login before
// the handler runs, and injects the user id otherwise.
func RequireSession(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := sessions.Current(c)
			if errors.Is(err, session.ErrSessionNotFound) {
				return c.Redirect(http.StatusFound, "/login")
			}
			if err != nil {
				return err
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}
