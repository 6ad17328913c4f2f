package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "famreg/internal/errors"
	"famreg/internal/model"
	"famreg/internal/repository"
	"famreg/internal/service"
)

// ParentHandler handles parent endpoints.
type ParentHandler struct {
	parentService service.ParentService
}

// NewParentHandler creates a new parent handler.
func NewParentHandler(parentService service.ParentService) *ParentHandler {
	return &ParentHandler{parentService: parentService}
}

// ParentRequest represents a full parent payload (create and PUT). Relation
// id sets omitted from the payload end up empty.
type ParentRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Age      *int   `json:"age" validate:"required"`
	Job      string `json:"job" validate:"required"`
	Tags     []uint `json:"tags"`
	Children []uint `json:"children"`
}

// ParentPatchRequest represents a partial parent payload. Absent fields stay
// untouched; a present relation set replaces the stored set.
type ParentPatchRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Age      *int    `json:"age"`
	Job      *string `json:"job"`
	Tags     *[]uint `json:"tags"`
	Children *[]uint `json:"children"`
}

// ParentResponse is the list/create shape: relations as bare ids.
type ParentResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Age      int    `json:"age"`
	Job      string `json:"job"`
	Tags     []uint `json:"tags"`
	Children []uint `json:"children"`
	Image    string `json:"image,omitempty"`
}

// ParentDetailResponse is the retrieve shape: relations as embedded objects.
type ParentDetailResponse struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Address  string          `json:"address"`
	Age      int             `json:"age"`
	Job      string          `json:"job"`
	Tags     []TagResponse   `json:"tags"`
	Children []ChildResponse `json:"children"`
	Image    string          `json:"image,omitempty"`
}

func newParentResponse(p *model.Parent) ParentResponse {
	tagIDs := make([]uint, 0, len(p.Tags))
	for _, t := range p.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	childIDs := make([]uint, 0, len(p.Children))
	for _, ch := range p.Children {
		childIDs = append(childIDs, ch.ID)
	}
	return ParentResponse{
		ID:       p.ID,
		Name:     p.Name,
		Address:  p.Address,
		Age:      p.Age,
		Job:      p.Job,
		Tags:     tagIDs,
		Children: childIDs,
		Image:    p.ImagePath,
	}
}

func newParentDetailResponse(p *model.Parent) ParentDetailResponse {
	return ParentDetailResponse{
		ID:       p.ID,
		Name:     p.Name,
		Address:  p.Address,
		Age:      p.Age,
		Job:      p.Job,
		Tags:     newTagResponses(p.Tags),
		Children: newChildResponses(p.Children),
		Image:    p.ImagePath,
	}
}

func parentIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid parent id")
	}
	return uint(id), nil
}

// List godoc
// @Summary List own parents
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Param tags query string false "Comma-separated tag ids (OR filter)"
// @Param children query string false "Comma-separated child ids (OR filter)"
// @Success 200 {array} ParentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /parents [get]
func (h *ParentHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	tagIDs, err := parseIDList(c.QueryParam("tags"))
	if err != nil {
		return respondError(err)
	}
	childIDs, err := parseIDList(c.QueryParam("children"))
	if err != nil {
		return respondError(err)
	}

	parents, err := h.parentService.List(c.Request().Context(), userID, repository.ParentFilter{
		TagIDs:   tagIDs,
		ChildIDs: childIDs,
	})
	if err != nil {
		return respondError(err)
	}

	out := make([]ParentResponse, 0, len(parents))
	for i := range parents {
		out = append(out, newParentResponse(&parents[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Retrieve godoc
// @Summary Get one parent with embedded relations
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parent ID"
// @Success 200 {object} ParentDetailResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /parents/{id} [get]
func (h *ParentHandler) Retrieve(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parentIDParam(c)
	if err != nil {
		return err
	}

	parent, err := h.parentService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newParentDetailResponse(parent))
}

// Create godoc
// @Summary Create a parent
// @Tags parents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ParentRequest true "Parent payload"
// @Success 201 {object} ParentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /parents [post]
func (h *ParentHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req ParentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parent, err := h.parentService.Create(c.Request().Context(), userID, service.ParentInput{
		Name:     req.Name,
		Address:  req.Address,
		Age:      *req.Age,
		Job:      req.Job,
		TagIDs:   req.Tags,
		ChildIDs: req.Children,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newParentResponse(parent))
}

// Update godoc
// @Summary Replace a parent (full update)
// @Tags parents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parent ID"
// @Param request body ParentRequest true "Full parent payload"
// @Success 200 {object} ParentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /parents/{id} [put]
func (h *ParentHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parentIDParam(c)
	if err != nil {
		return err
	}

	var req ParentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parent, err := h.parentService.Replace(c.Request().Context(), userID, id, service.ParentInput{
		Name:     req.Name,
		Address:  req.Address,
		Age:      *req.Age,
		Job:      req.Job,
		TagIDs:   req.Tags,
		ChildIDs: req.Children,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newParentResponse(parent))
}

// PartialUpdate godoc
// @Summary Patch a parent (partial update)
// @Tags parents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parent ID"
// @Param request body ParentPatchRequest true "Fields to change"
// @Success 200 {object} ParentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /parents/{id} [patch]
func (h *ParentHandler) PartialUpdate(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parentIDParam(c)
	if err != nil {
		return err
	}

	var req ParentPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	parent, err := h.parentService.Patch(c.Request().Context(), userID, id, service.ParentPatch{
		Name:     req.Name,
		Address:  req.Address,
		Age:      req.Age,
		Job:      req.Job,
		TagIDs:   req.Tags,
		ChildIDs: req.Children,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newParentResponse(parent))
}

// Delete godoc
// @Summary Delete a parent
// @Tags parents
// @Security BearerAuth
// @Param id path int true "Parent ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /parents/{id} [delete]
func (h *ParentHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parentIDParam(c)
	if err != nil {
		return err
	}

	if err := h.parentService.Delete(c.Request().Context(), userID, id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload a parent image
// @Tags parents
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parent ID"
// @Param image formData file true "Image file"
// @Success 200 {object} ParentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /parents/{id}/upload-image [post]
func (h *ParentHandler) UploadImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parentIDParam(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return respondError(apperrors.ErrInvalidImage)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(apperrors.ErrInvalidImage)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(apperrors.ErrInvalidImage)
	}

	parent, err := h.parentService.UploadImage(c.Request().Context(), userID, id, data)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newParentResponse(parent))
}
