package template

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/plan"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/auth"
	"github.com/ugrvsvs/my-osteo-app/pkg/pagination"
)

// PlanReader is the slice of the plan service the expand endpoint needs.
type PlanReader interface {
	Get(ctx context.Context, patientID uuid.UUID) ([]*plan.Entry, error)
}

type Handler struct {
	svc   *Service
	plans PlanReader
}

func NewHandler(svc *Service, plans PlanReader) *Handler {
	return &Handler{svc: svc, plans: plans}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("clinician"))
	g.GET("/templates", h.List)
	g.POST("/templates", h.Create)
	g.GET("/templates/:id", h.Get)
	g.PUT("/templates/:id", h.Update)
	g.DELETE("/templates/:id", h.Delete)
	g.POST("/patients/:id/plan/expand-template", h.Expand)
}

type upsertRequest struct {
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	VideoIDs    []uuid.UUID `json:"video_ids"`
}

func (h *Handler) Create(c echo.Context) error {
	var body upsertRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t := &Template{Name: body.Name, Description: body.Description}
	d, err := h.svc.Create(c.Request().Context(), t, body.VideoIDs)
	if err != nil {
		return apperr.HTTP(c, err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return apperr.HTTP(c, err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body upsertRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.Update(c.Request().Context(), id, body.Name, body.Description, body.VideoIDs)
	if err != nil {
		return apperr.HTTP(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return apperr.HTTP(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type expandRequest struct {
	TemplateID uuid.UUID `json:"template_id"`
}

// Expand returns the candidate plan that would result from applying a
// template to the patient's current plan. Nothing is persisted; the
// caller submits the candidate through the ordinary plan replace.
func (h *Handler) Expand(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body expandRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.TemplateID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "template_id is required")
	}

	ctx := c.Request().Context()
	entries, err := h.plans.Get(ctx, patientID)
	if err != nil {
		return apperr.HTTP(c, err)
	}

	existing := make([]plan.ReplaceItem, 0, len(entries))
	for _, e := range entries {
		existing = append(existing, plan.ReplaceItem{
			VideoID:          e.Video.ID,
			Sets:             e.Sets,
			Reps:             e.Reps,
			DurationOverride: e.DurationOverride,
			Comment:          e.Comment,
		})
	}

	merged, added, skipped, err := h.svc.Expand(ctx, body.TemplateID, existing)
	if err != nil {
		return apperr.HTTP(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"exercises": merged,
		"added":     added,
		"skipped":   skipped,
	})
}
