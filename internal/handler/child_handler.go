package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"famreg/internal/model"
	"famreg/internal/service"
)

// ChildHandler handles child endpoints.
type ChildHandler struct {
	childService service.ChildService
}

// NewChildHandler creates a new child handler.
func NewChildHandler(childService service.ChildService) *ChildHandler {
	return &ChildHandler{childService: childService}
}

// ChildRequest represents a child create payload.
type ChildRequest struct {
	Name string `json:"name" validate:"required"`
}

// ChildResponse is the public shape of a child.
type ChildResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newChildResponse(ch model.Child) ChildResponse {
	return ChildResponse{ID: ch.ID, Name: ch.Name}
}

func newChildResponses(children []model.Child) []ChildResponse {
	out := make([]ChildResponse, 0, len(children))
	for _, ch := range children {
		out = append(out, newChildResponse(ch))
	}
	return out
}

// List godoc
// @Summary List own children
// @Tags children
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "Only children assigned to a parent (1)"
// @Success 200 {array} ChildResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /children [get]
func (h *ChildHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	assignedOnly := c.QueryParam("assigned_only") == "1"
	children, err := h.childService.List(c.Request().Context(), userID, assignedOnly)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newChildResponses(children))
}

// Create godoc
// @Summary Create a child
// @Tags children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChildRequest true "Child payload"
// @Success 201 {object} ChildResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /children [post]
func (h *ChildHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req ChildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	child, err := h.childService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newChildResponse(*child))
}
