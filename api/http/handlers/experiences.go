package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/experience"
)

type ExperienceHandler struct {
	useCase experience.UseCase
}

func NewExperienceHandler(useCase experience.UseCase) *ExperienceHandler {
	return &ExperienceHandler{useCase: useCase}
}

type experienceRequest struct {
	ProjectName        *string  `json:"project_name"`
	ProjectDescription *string  `json:"project_description"`
	ProjectValue       *float64 `json:"project_value"`
	DateStarted        *string  `json:"date_started"`
	DateCompleted      *string  `json:"date_completed"`
	// Ongoing clears date_completed.
	Ongoing   bool    `json:"ongoing"`
	Location  *string `json:"location"`
	Tags      *string `json:"tags"`
	ClientID  *int64  `json:"client_id"`
	ContactID *int64  `json:"contact_id"`
}

func (r experienceRequest) update() (experience.Update, error) {
	started, err := parseDate("date_started", r.DateStarted)
	if err != nil {
		return experience.Update{}, err
	}
	completed, err := parseDate("date_completed", r.DateCompleted)
	if err != nil {
		return experience.Update{}, err
	}
	return experience.Update{
		ProjectName:        r.ProjectName,
		ProjectDescription: r.ProjectDescription,
		ProjectValue:       r.ProjectValue,
		DateStarted:        started,
		DateCompleted:      completed,
		Ongoing:            r.Ongoing,
		Location:           r.Location,
		Tags:               r.Tags,
		ClientID:           r.ClientID,
		ContactID:          r.ContactID,
	}, nil
}

// Create
// @Summary Create experience
// @Tags    experiences
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body experienceRequest true "experience; dates as YYYY-MM-DD"
// @Success 201 {object} experience.Experience
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /experiences [post]
func (h *ExperienceHandler) Create(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	upd, err := req.update()
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var e experience.Experience
	upd.Apply(&e)
	out, err := h.useCase.Create(c.Context(), e)
	if err != nil {
		return presenter.Fail(c, err, "failed to create experience")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get
// @Summary Get experience
// @Tags    experiences
// @Produce json
// @Security BearerAuth
// @Param   id path int true "experience id"
// @Success 200 {object} experience.Experience
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /experiences/{id} [get]
func (h *ExperienceHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Get(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to get experience")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List
// @Summary List experiences
// @Tags    experiences
// @Produce json
// @Security BearerAuth
// @Param   client_id query int false "only experiences of this client"
// @Param   limit query int false "limit (default 50, max 200)"
// @Param   offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router  /experiences [get]
func (h *ExperienceHandler) List(c *fiber.Ctx) error {
	clientID, err := queryID(c, "client_id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	limit, offset := parseLimitOffset(c, defaultLimit)
	items, err := h.useCase.List(c.Context(), clientID, limit, offset)
	if err != nil {
		return presenter.Fail(c, err, "failed to list experiences")
	}
	return presenter.List(c, items, limit, offset)
}

// Update
// @Summary Update experience
// @Tags    experiences
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "experience id"
// @Param   input body experienceRequest true "fields to change"
// @Success 200 {object} experience.Experience
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /experiences/{id} [patch]
func (h *ExperienceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	upd, err := req.update()
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Update(c.Context(), id, upd)
	if err != nil {
		return presenter.Fail(c, err, "failed to update experience")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete
// @Summary Delete experience
// @Tags    experiences
// @Security BearerAuth
// @Param   id path int true "experience id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /experiences/{id} [delete]
func (h *ExperienceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	if err := h.useCase.Delete(c.Context(), id); err != nil {
		return presenter.Fail(c, err, "failed to delete experience")
	}
	return c.SendStatus(http.StatusNoContent)
}
