package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bullyguard/bullyguard/internal/core/domain"
	"github.com/bullyguard/bullyguard/internal/core/ports"
)

// PredictHandler serves the signed-in pages backed by PredictionService:
// home, predict and history.
type PredictHandler struct {
	service ports.PredictionService
}

func NewPredictHandler(service ports.PredictionService) *PredictHandler {
	return &PredictHandler{service: service}
}

// Home handles GET /home.
func (h *PredictHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", Page{Title: "Home", Authenticated: true})
}

// PredictForm handles GET /predict.
func (h *PredictHandler) PredictForm(c echo.Context) error {
	return c.Render(http.StatusOK, "predict", predictView{Page: Page{Title: "Predict", Authenticated: true}})
}

// Predict handles POST /predict.
func (h *PredictHandler) Predict(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var form predictForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	view := predictView{Page: Page{Title: "Predict", Authenticated: true}, Text: form.Text}

	result, err := h.service.Predict(c.Request().Context(), userID, form.Text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			view.Error = "Please enter some text to check."
			return c.Render(http.StatusBadRequest, "predict", view)
		}
		return err
	}

	view.Result = result.Record.Label.Display()
	view.LabelClass = string(result.Record.Label)
	view.Confidence = result.Record.Confidence
	view.Steps = result.Steps
	return c.Render(http.StatusOK, "predict", view)
}

// History handles GET /history.
func (h *PredictHandler) History(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	records, err := h.service.History(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "history", historyView{
		Page:    Page{Title: "History", Authenticated: true},
		Records: records,
	})
}
