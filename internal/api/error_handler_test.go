package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "short and stout"},
		{"invalid input", fmt.Errorf("text is required: %w", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"classifier", fmt.Errorf("classify: %w: %w", domain.ErrClassifier, errors.New("ollama down")), http.StatusInternalServerError, "the message could not be classified, please try again later"},
		{"storage", fmt.Errorf("append: %w: %w", domain.ErrStorage, errors.New("disk I/O")), http.StatusInternalServerError, "storage is unavailable, please try again later"},
		{"unknown", errors.New("something odd"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/predict", nil), rec)

			handle(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("expected JSON body, got %q: %v", rec.Body.String(), err)
			}
			if body.Error != tc.msg {
				t.Errorf("expected %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_RendersErrorPage(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		t.Fatalf("NewTemplateRenderer: %v", err)
	}
	e := echo.New()
	e.Renderer = renderer

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/history", nil), rec)
	NewHTTPErrorHandler(zerolog.Nop())(fmt.Errorf("list: %w", domain.ErrStorage), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != echo.MIMETextHTMLCharsetUTF8 {
		t.Errorf("expected HTML content type, got %q", ct)
	}
}
