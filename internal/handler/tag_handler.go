package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"famreg/internal/model"
	"famreg/internal/service"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagRequest represents a tag create payload.
type TagRequest struct {
	Name string `json:"name" validate:"required"`
}

// TagResponse is the public shape of a tag.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTagResponse(t model.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func newTagResponses(tags []model.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, newTagResponse(t))
	}
	return out
}

// List godoc
// @Summary List own tags
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "Only tags assigned to a parent (1)"
// @Success 200 {array} TagResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	assignedOnly := c.QueryParam("assigned_only") == "1"
	tags, err := h.tagService.List(c.Request().Context(), userID, assignedOnly)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newTagResponses(tags))
}

// Create godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TagRequest true "Tag payload"
// @Success 201 {object} TagResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newTagResponse(*tag))
}
