package share

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the share view onto the public group. The
// endpoint is deliberately unauthenticated; the token is the secret.
func (h *Handler) RegisterRoutes(public *echo.Group) {
	public.GET("/share/:token", h.resolve)
}

func (h *Handler) resolve(c echo.Context) error {
	view, err := h.svc.Resolve(c.Request().Context(), c.Param("token"))
	if err != nil {
		return apperr.HTTP(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
