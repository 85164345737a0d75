package doctor

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cliniq/cliniq/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.List)
	api.GET("/doctors/:id", h.Get)
	api.POST("/doctors", h.Create)
	api.PUT("/doctors/:id", h.Update)
	api.DELETE("/doctors/:id", h.Deactivate)
}

func (h *Handler) List(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	out, err := h.svc.List(c.Request().Context(), activeOnly)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.List(c, out, len(out))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid doctor id")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, d)
}

func (h *Handler) Create(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid request body")
	}
	id, err := h.svc.Create(c.Request().Context(), &in)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.Created(c, map[string]interface{}{
		"doctor_id": id,
		"message":   "Doctor created successfully",
	})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid doctor id")
	}
	var in Input
	if err := c.Bind(&in); err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := h.svc.Update(c.Request().Context(), id, &in); err != nil {
		return respond.Error(c, err)
	}
	return respond.Message(c, "Doctor updated successfully", nil)
}

func (h *Handler) Deactivate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid doctor id")
	}
	if err := h.svc.Deactivate(c.Request().Context(), id); err != nil {
		return respond.Error(c, err)
	}
	return respond.Message(c, "Doctor deactivated successfully", nil)
}
