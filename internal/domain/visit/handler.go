package visit

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
	api.GET("/visits", h.List)
	api.GET("/visits/:id", h.Get)
	api.POST("/visits", h.Create)
}

// List returns visits, optionally scoped to one patient via ?patient_id=.
// A bare ?id= is also honored for single lookup, which the original clients
// use interchangeably with the path form.
func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if idStr := c.QueryParam("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid visit id")
		}
		v, err := h.svc.Get(ctx, id)
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, v)
	}

	if pidStr := c.QueryParam("patient_id"); pidStr != "" {
		pid, err := strconv.ParseInt(pidStr, 10, 64)
		if err != nil {
			return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid patient id")
		}
		visits, err := h.svc.ListByPatient(ctx, pid)
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.List(c, emptyIfNil(visits), len(visits))
	}

	visits, err := h.svc.List(ctx)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.List(c, emptyIfNil(visits), len(visits))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid visit id")
	}
	v, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, v)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.svc.Create(c.Request().Context(), &in)
	if err != nil {
		return respond.Error(c, err)
	}

	return respond.Created(c, map[string]interface{}{
		"visit_id":   res.VisitID,
		"ai_summary": res.AISummary,
		"message":    "Visit created successfully",
	})
}

func emptyIfNil(visits []Visit) []Visit {
	if visits == nil {
		return []Visit{}
	}
	return visits
}
