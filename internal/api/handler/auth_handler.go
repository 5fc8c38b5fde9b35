package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bullyguard/bullyguard/internal/api/metrics"
	"github.com/bullyguard/bullyguard/internal/core/domain"
	"github.com/bullyguard/bullyguard/internal/core/ports"
)

const invalidLoginMessage = "Invalid username or password."

// SessionStarter creates and ends browser sessions.
type SessionStarter interface {
	Start(c echo.Context, userID string) error
	End(c echo.Context) error
}

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	authService ports.AuthService
	sessions    SessionStarter
	logger      zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions SessionStarter, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, logger: logger}
}

// Index handles GET /.
func (h *AuthHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/login")
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", credentialsView{Page: Page{Title: "Register"}})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	view := credentialsView{Page: Page{Title: "Register"}, Username: form.Username}
	if err := c.Validate(&form); err != nil {
		view.Error = err.Error()
		return c.Render(http.StatusBadRequest, "register", view)
	}

	if _, err := h.authService.Register(c.Request().Context(), form.Username, form.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			view.Error = "username and password are required"
			return c.Render(http.StatusBadRequest, "register", view)
		}
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.Redirect(http.StatusFound, "/login")
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", credentialsView{Page: Page{Title: "Login"}})
}

// Login handles POST /login. A failed match re-renders the form with 200 and
// a generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	user, err := h.authService.Verify(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.Render(http.StatusOK, "login", credentialsView{
				Page:     Page{Title: "Login", Error: invalidLoginMessage},
				Username: form.Username,
			})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return c.Redirect(http.StatusFound, "/home")
}

// Logout handles GET /logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.End(c); err != nil {
		h.logger.Warn().Err(err).Msg("end session")
	}
	return c.Redirect(http.StatusFound, "/login")
}
