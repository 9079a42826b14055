package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/resume"
	"github.com/artem13815/docmaker/pkg/template"
)

type TemplateHandler struct {
	useCase template.UseCase
	resumes resume.UseCase
}

func NewTemplateHandler(useCase template.UseCase, resumes resume.UseCase) *TemplateHandler {
	return &TemplateHandler{useCase: useCase, resumes: resumes}
}

type templateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	IsDefault   bool    `json:"is_default"`
}

func (r templateRequest) update() template.Update {
	return template.Update{Name: r.Name, Description: r.Description, Content: r.Content}
}

// Create
// @Summary Create template
// @Description Content must compile. is_default=true replaces the current default.
// @Tags    templates
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body templateRequest true "template"
// @Success 201 {object} template.Template
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /templates [post]
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	t := template.Template{IsDefault: req.IsDefault}
	req.update().Apply(&t)
	out, err := h.useCase.Create(c.Context(), t)
	if err != nil {
		return presenter.Fail(c, err, "failed to create template")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get
// @Summary Get template
// @Tags    templates
// @Produce json
// @Security BearerAuth
// @Param   id path int true "template id"
// @Success 200 {object} template.Template
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /templates/{id} [get]
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Get(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to get template")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List
// @Summary List templates
// @Tags    templates
// @Produce json
// @Security BearerAuth
// @Param   limit query int false "limit (default 50, max 200)"
// @Param   offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router  /templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, defaultLimit)
	items, err := h.useCase.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Fail(c, err, "failed to list templates")
	}
	return presenter.List(c, items, limit, offset)
}

// Update
// @Summary Update template
// @Description A content change bumps the version.
// @Tags    templates
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "template id"
// @Param   input body templateRequest true "fields to change; is_default is ignored"
// @Success 200 {object} template.Template
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /templates/{id} [patch]
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	out, err := h.useCase.Update(c.Context(), id, req.update())
	if err != nil {
		return presenter.Fail(c, err, "failed to update template")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete
// @Summary Delete template
// @Tags    templates
// @Security BearerAuth
// @Param   id path int true "template id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse "still used by a resume"
// @Router  /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	if err := h.useCase.Delete(c.Context(), id); err != nil {
		return presenter.Fail(c, err, "failed to delete template")
	}
	return c.SendStatus(http.StatusNoContent)
}

// Default
// @Summary Default template
// @Description Returns the default template, creating it from the bundled layout when none exists.
// @Tags    templates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} template.Template
// @Router  /templates/default [get]
func (h *TemplateHandler) Default(c *fiber.Ctx) error {
	out, err := h.useCase.Default(c.Context())
	if err != nil {
		return presenter.Fail(c, err, "failed to load default template")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// SetDefault
// @Summary Make template the default
// @Tags    templates
// @Produce json
// @Security BearerAuth
// @Param   id path int true "template id"
// @Success 200 {object} template.Template
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /templates/{id}/default [post]
func (h *TemplateHandler) SetDefault(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.SetDefault(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to set default template")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type previewRequest struct {
	ResumeID int64  `json:"resume_id"`
	Content  string `json:"content"`
}

type previewResponse struct {
	HTML string `json:"html"`
}

// Preview renders template source against a resume's variables without storing it.
// @Summary Preview template
// @Tags    templates
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body previewRequest true "resume id and template source"
// @Success 200 {object} previewResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /templates/preview [post]
func (h *TemplateHandler) Preview(c *fiber.Ctx) error {
	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	if req.ResumeID <= 0 || strings.TrimSpace(req.Content) == "" {
		return presenter.Error(c, http.StatusBadRequest, "resume_id and content are required")
	}
	html, err := h.resumes.Preview(c.Context(), req.ResumeID, req.Content)
	if err != nil {
		return presenter.Fail(c, err, "failed to render preview")
	}
	return presenter.JSON(c, http.StatusOK, previewResponse{HTML: html})
}
