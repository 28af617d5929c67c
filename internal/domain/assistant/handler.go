package assistant

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("clinician"))
	g.POST("/assistant/suggest", h.suggest)
	g.POST("/assistant/summarize", h.summarize)
}

type suggestRequest struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) suggest(c echo.Context) error {
	var req suggestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	suggestions, err := h.svc.Suggest(c.Request().Context(), req.Prompt)
	if err != nil {
		return apperr.HTTP(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

type summarizeRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
}

func (h *Handler) summarize(c echo.Context) error {
	var req summarizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PatientID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}
	text, err := h.svc.Summarize(c.Request().Context(), req.PatientID)
	if err != nil {
		return apperr.HTTP(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"summary": text})
}
