package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const DefaultCookieName = "session"

// Manager issues, reads and clears the session cookie on top of a Store.
type Manager struct {
	store  Store
	cookie string
	ttl    time.Duration
	secure bool
}

func NewManager(store Store, cookieName string, ttl time.Duration, secure bool) *Manager {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Manager{store: store, cookie: cookieName, ttl: ttl, secure: secure}
}

// Start creates a session for userID and sets the cookie on the response.
func (m *Manager) Start(c echo.Context, userID string) error {
	token, err := m.store.Create(c.Request().Context(), userID)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	c.SetCookie(m.newCookie(token, int(m.ttl.Seconds())))
	return nil
}

// Current returns the user id for the request's session cookie. A missing,
// expired or unknown session yields ErrSessionNotFound.
func (m *Manager) Current(c echo.Context) (string, error) {
	ck, err := c.Cookie(m.cookie)
	if err != nil || ck.Value == "" {
		return "", ErrSessionNotFound
	}
	return m.store.Lookup(c.Request().Context(), ck.Value)
}

// End deletes the session, if any, and expires the cookie.
func (m *Manager) End(c echo.Context) error {
	ck, err := c.Cookie(m.cookie)
	if err == nil && ck.Value != "" {
		if err := m.store.Delete(c.Request().Context(), ck.Value); err != nil && !errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	c.SetCookie(m.newCookie("", -1))
	return nil
}

func (m *Manager) newCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
