package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/project"
)

type ProjectHandler struct {
	useCase project.UseCase
}

func NewProjectHandler(useCase project.UseCase) *ProjectHandler {
	return &ProjectHandler{useCase: useCase}
}

type projectRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Date          *string  `json:"date"`
	ContractValue *float64 `json:"contract_value"`
	Location      *string  `json:"location"`
	ClientID      *int64   `json:"client_id"`
	ContactID     *int64   `json:"contact_id"`
	MainImageID   *int64   `json:"main_image_id"`
}

func (r projectRequest) update() (project.Update, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return project.Update{}, err
	}
	return project.Update{
		Name:          r.Name,
		Description:   r.Description,
		Date:          date,
		ContractValue: r.ContractValue,
		Location:      r.Location,
		ClientID:      r.ClientID,
		ContactID:     r.ContactID,
		MainImageID:   r.MainImageID,
	}, nil
}

// Create
// @Summary Create project
// @Tags    projects
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body projectRequest true "project"
// @Success 201 {object} project.Project
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req projectRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	upd, err := req.update()
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var p project.Project
	upd.Apply(&p)
	out, err := h.useCase.Create(c.Context(), p)
	if err != nil {
		return presenter.Fail(c, err, "failed to create project")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get
// @Summary Get project
// @Tags    projects
// @Produce json
// @Security BearerAuth
// @Param   id path int true "project id"
// @Success 200 {object} project.Project
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /projects/{id} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Get(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to get project")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List
// @Summary List projects
// @Tags    projects
// @Produce json
// @Security BearerAuth
// @Param   limit query int false "limit (default 50, max 200)"
// @Param   offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router  /projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, defaultLimit)
	items, err := h.useCase.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Fail(c, err, "failed to list projects")
	}
	return presenter.List(c, items, limit, offset)
}

// Update
// @Summary Update project
// @Tags    projects
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "project id"
// @Param   input body projectRequest true "fields to change; ids 0 detach"
// @Success 200 {object} project.Project
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /projects/{id} [patch]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req projectRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	upd, err := req.update()
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Update(c.Context(), id, upd)
	if err != nil {
		return presenter.Fail(c, err, "failed to update project")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete
// @Summary Delete project
// @Tags    projects
// @Security BearerAuth
// @Param   id path int true "project id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	if err := h.useCase.Delete(c.Context(), id); err != nil {
		return presenter.Fail(c, err, "failed to delete project")
	}
	return c.SendStatus(http.StatusNoContent)
}
