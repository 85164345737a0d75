package identity

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cliniq/cliniq/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts login on the unauthenticated group.
func (h *Handler) RegisterRoutes(public *echo.Group) {
	public.POST("/login", h.Login)
}

func (h *Handler) Login(c echo.Context) error {
	var in LoginInput
	if err := c.Bind(&in); err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid request body")
	}
	res, err := h.svc.Login(c.Request().Context(), &in)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.Message(c, "Login successful", map[string]interface{}{
		"user":  res.User,
		"token": res.Token,
	})
}
