package patient

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cliniq/cliniq/pkg/pagination"
	"github.com/cliniq/cliniq/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.List)
	api.GET("/patients/:id", h.Get)
	api.POST("/patients", h.Create)
	api.PUT("/patients/:id", h.Update)
}

func (h *Handler) List(c echo.Context) error {
	patients, total, err := h.svc.List(c.Request().Context(), pagination.FromContext(c))
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.List(c, patients, total)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid patient id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, p)
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
		"patient_id": id,
		"message":    "Patient created successfully",
	})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Patient ID is required")
	}
	var in Input
	if err := c.Bind(&in); err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := h.svc.Update(c.Request().Context(), id, &in); err != nil {
		return respond.Error(c, err)
	}
	return respond.Message(c, "Patient updated successfully", nil)
}
