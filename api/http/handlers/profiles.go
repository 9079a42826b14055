package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/profile"
)

type ProfileHandler struct {
	useCase profile.UseCase
}

func NewProfileHandler(useCase profile.UseCase) *ProfileHandler {
	return &ProfileHandler{useCase: useCase}
}

type profileRequest struct {
	FirstName         *string                  `json:"first_name"`
	LastName          *string                  `json:"last_name"`
	FullName          *string                  `json:"full_name"`
	CurrentTitle      *string                  `json:"current_title"`
	ProfessionalIntro *string                  `json:"professional_intro"`
	Department        *string                  `json:"department"`
	EmployeeType      *string                  `json:"employee_type"`
	IsCurrentEmployee *bool                    `json:"is_current_employee"`
	Email             *string                  `json:"email"`
	Mobile            *string                  `json:"mobile"`
	Address           *string                  `json:"address"`
	AboutURL          *string                  `json:"about_url"`
	MainImageID       *int64                   `json:"main_image_id"`
	Skills            *[]profile.Skill         `json:"skills"`
	Certifications    *[]profile.Certification `json:"certifications"`
	Education         *[]profile.Education     `json:"education"`
}

func (r profileRequest) update() profile.Update {
	return profile.Update{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		FullName:          r.FullName,
		CurrentTitle:      r.CurrentTitle,
		ProfessionalIntro: r.ProfessionalIntro,
		Department:        r.Department,
		EmployeeType:      r.EmployeeType,
		IsCurrentEmployee: r.IsCurrentEmployee,
		Email:             r.Email,
		Mobile:            r.Mobile,
		Address:           r.Address,
		AboutURL:          r.AboutURL,
		MainImageID:       r.MainImageID,
		Skills:            r.Skills,
		Certifications:    r.Certifications,
		Education:         r.Education,
	}
}

// Create
// @Summary Create profile
// @Tags    profiles
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body profileRequest true "profile with skills, certifications and education"
// @Success 201 {object} profile.Profile
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /profiles [post]
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	p := profile.Profile{IsCurrentEmployee: true}
	req.update().Apply(&p)
	out, err := h.useCase.Create(c.Context(), p)
	if err != nil {
		return presenter.Fail(c, err, "failed to create profile")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get
// @Summary Get profile
// @Tags    profiles
// @Produce json
// @Security BearerAuth
// @Param   id path int true "profile id"
// @Success 200 {object} profile.Profile
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profiles/{id} [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Get(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to get profile")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List
// @Summary List profiles
// @Tags    profiles
// @Produce json
// @Security BearerAuth
// @Param   q query string false "search in names and title"
// @Param   limit query int false "limit (default 50, max 200)"
// @Param   offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router  /profiles [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, defaultLimit)
	items, err := h.useCase.List(c.Context(), c.Query("q"), limit, offset)
	if err != nil {
		return presenter.Fail(c, err, "failed to list profiles")
	}
	return presenter.List(c, items, limit, offset)
}

// Update
// @Summary Update profile
// @Tags    profiles
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "profile id"
// @Param   input body profileRequest true "fields to change; collections are replaced as a whole"
// @Success 200 {object} profile.Profile
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profiles/{id} [patch]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	out, err := h.useCase.Update(c.Context(), id, req.update())
	if err != nil {
		return presenter.Fail(c, err, "failed to update profile")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete
// @Summary Delete profile
// @Tags    profiles
// @Security BearerAuth
// @Param   id path int true "profile id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profiles/{id} [delete]
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	if err := h.useCase.Delete(c.Context(), id); err != nil {
		return presenter.Fail(c, err, "failed to delete profile")
	}
	return c.SendStatus(http.StatusNoContent)
}
