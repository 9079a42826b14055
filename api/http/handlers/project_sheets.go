package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/projectsheet"
	"github.com/artem13815/docmaker/pkg/security/jwt"
)

// ProjectSheetHandler serves project sheets of the calling user.
type ProjectSheetHandler struct {
	useCase projectsheet.UseCase
}

func NewProjectSheetHandler(useCase projectsheet.UseCase) *ProjectSheetHandler {
	return &ProjectSheetHandler{useCase: useCase}
}

type createSheetRequest struct {
	Title string `json:"title"`
}

// Create
// @Summary Generate project sheet
// @Description Title defaults to "<project name> - Project Sheet".
// @Tags    project-sheets
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "project id"
// @Param   input body createSheetRequest false "optional title"
// @Success 201 {object} projectsheet.Sheet
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /projects/{id}/sheet [post]
func (h *ProjectSheetHandler) Create(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	projectID, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req createSheetRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c)
		}
	}
	out, err := h.useCase.Create(c.Context(), uid, projectID, req.Title)
	if err != nil {
		return presenter.Fail(c, err, "failed to generate project sheet")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get
// @Summary Get project sheet
// @Tags    project-sheets
// @Produce json
// @Security BearerAuth
// @Param   id path int true "sheet id"
// @Success 200 {object} projectsheet.Sheet
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /project-sheets/{id} [get]
func (h *ProjectSheetHandler) Get(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Get(c.Context(), uid, id)
	if err != nil {
		return presenter.Fail(c, err, "failed to get project sheet")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List
// @Summary List my project sheets
// @Tags    project-sheets
// @Produce json
// @Security BearerAuth
// @Param   limit query int false "limit (default 50, max 200)"
// @Param   offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router  /project-sheets [get]
func (h *ProjectSheetHandler) List(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := parseLimitOffset(c, defaultLimit)
	items, err := h.useCase.List(c.Context(), uid, limit, offset)
	if err != nil {
		return presenter.Fail(c, err, "failed to list project sheets")
	}
	return presenter.List(c, items, limit, offset)
}

// Regenerate
// @Summary Regenerate project sheet from current project data
// @Tags    project-sheets
// @Produce json
// @Security BearerAuth
// @Param   id path int true "sheet id"
// @Success 200 {object} projectsheet.Sheet
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /project-sheets/{id}/regenerate [post]
func (h *ProjectSheetHandler) Regenerate(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Regenerate(c.Context(), uid, id)
	if err != nil {
		return presenter.Fail(c, err, "failed to regenerate project sheet")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete
// @Summary Delete project sheet
// @Tags    project-sheets
// @Security BearerAuth
// @Param   id path int true "sheet id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /project-sheets/{id} [delete]
func (h *ProjectSheetHandler) Delete(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	if err := h.useCase.Delete(c.Context(), uid, id); err != nil {
		return presenter.Fail(c, err, "failed to delete project sheet")
	}
	return c.SendStatus(http.StatusNoContent)
}

// PDF
// @Summary Download project sheet as PDF
// @Tags    project-sheets
// @Produce application/pdf
// @Security BearerAuth
// @Param   id path int true "sheet id"
// @Success 200 {file} binary
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /project-sheets/{id}/pdf [get]
func (h *ProjectSheetHandler) PDF(c *fiber.Ctx) error {
	uid, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	name, data, err := h.useCase.Download(c.Context(), uid, id)
	if err != nil {
		return presenter.Fail(c, err, "failed to export PDF")
	}
	return sendPDF(c, name, data)
}
