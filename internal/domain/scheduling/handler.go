package scheduling

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
	api.GET("/appointments", h.List)
	api.GET("/appointments/:id", h.Get)
	api.POST("/appointments", h.Create)
	api.PUT("/appointments/:id", h.Update)
	api.DELETE("/appointments/:id", h.Cancel)
}

func (h *Handler) List(c echo.Context) error {
	var f ListFilter
	switch c.QueryParam("filter") {
	case "today":
		f.Today = true
	case "upcoming":
		f.Upcoming = true
	}
	if raw := c.QueryParam("patient_id"); raw != "" {
		pid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid patient_id")
		}
		f.PatientID = pid
	}
	out, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.List(c, out, len(out))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid appointment id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, a)
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
		"appointment_id": id,
		"message":        "Appointment created successfully",
	})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid appointment id")
	}
	var in Input
	if err := c.Bind(&in); err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := h.svc.Update(c.Request().Context(), id, &in); err != nil {
		return respond.Error(c, err)
	}
	return respond.Message(c, "Appointment updated successfully", nil)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid appointment id")
	}
	if err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		return respond.Error(c, err)
	}
	return respond.Message(c, "Appointment cancelled successfully", nil)
}
