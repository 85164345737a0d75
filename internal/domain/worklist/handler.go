package worklist

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

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/lab-tests", h.List)
	api.PUT("/lab-tests", h.Update)
}

// List returns every outstanding test across all visits, lab and imaging
// alike, for the technician worklist screen.
func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.List(c, items, len(items))
}

// Update applies a status/result change to a single test record addressed
// by its synthetic id.
func (h *Handler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Missing required fields")
	}
	if req.TestID == "" || req.Status == "" {
		return respond.ErrorStatus(c, http.StatusBadRequest, "Missing required fields")
	}

	if err := h.svc.Update(c.Request().Context(), req); err != nil {
		return respond.Error(c, err)
	}

	return respond.Message(c, "Test updated successfully", map[string]interface{}{
		"test_id": req.TestID,
		"status":  req.Status,
	})
}
