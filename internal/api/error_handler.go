package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// errorView is the data of the "error" template.
type errorView struct {
	Title         string
	Authenticated bool
	Error         string
	Message       string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected and server-side errors without leaking details.
//   - Renders the error page for browsers and {"error": "<message>"} for
//     clients that ask for JSON.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		if wantsJSON(c) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}

		view := errorView{Title: http.StatusText(code), Message: msg}
		if rerr := c.Render(code, "error", view); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, msg)
		}
	}
}

func wantsJSON(c echo.Context) bool {
	if c.Echo().Renderer == nil {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrClassifier):
		logError(log, c, err, "classifier failure")
		return http.StatusInternalServerError, "the message could not be classified, please try again later"
	case errors.Is(err, domain.ErrStorage):
		logError(log, c, err, "storage failure")
		return http.StatusInternalServerError, "storage is unavailable, please try again later"
	}

	logError(log, c, err, "unhandled error")
	return http.StatusInternalServerError, "internal server error"
}

func logError(log zerolog.Logger, c echo.Context, err error, msg string) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg(msg)
}
