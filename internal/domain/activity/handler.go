package activity

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

// RegisterRoutes wires the activity endpoints. The record endpoint is
// registered on the public group so the share view can post events
// without credentials; the summary stays behind clinician auth.
func (h *Handler) RegisterRoutes(api, public *echo.Group) {
	public.POST("/activity", h.record)

	g := api.Group("", auth.RequireRole("clinician"))
	g.GET("/patients/:id/activity", h.summarize)
}

type recordRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
	VideoID   uuid.UUID `json:"video_id"`
	Action    string    `json:"action"`
}

func (h *Handler) record(c echo.Context) error {
	var req recordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.Record(c.Request().Context(), req.PatientID, req.VideoID, req.Action); err != nil {
		return apperr.HTTP(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) summarize(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	summary, err := h.svc.Summarize(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
