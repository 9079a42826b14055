package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/logger"
	"github.com/artem13815/docmaker/pkg/resume"
)

// ResumeHandler serves resumes, their experience rows, AI rewrites and PDF export.
type ResumeHandler struct {
	useCase resume.UseCase
	log     *zap.Logger
}

func NewResumeHandler(useCase resume.UseCase, log *zap.Logger) *ResumeHandler {
	return &ResumeHandler{useCase: useCase, log: logger.OrNop(log).Named("http.resumes")}
}

type createResumeRequest struct {
	Alias         string  `json:"alias"`
	TemplateID    *int64  `json:"template_id"`
	ProposalID    *int64  `json:"proposal_id"`
	ProfileID     *int64  `json:"profile_id"`
	ExperienceIDs []int64 `json:"experience_ids"`
}

// Create renders a new resume and stores it with its experience rows.
// @Summary Create resume
// @Description experience_ids order becomes the display order. Without template_id the default template is used.
// @Tags    resumes
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body createResumeRequest true "resume"
// @Success 201 {object} resume.View
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes [post]
func (h *ResumeHandler) Create(c *fiber.Ctx) error {
	var req createResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	out, err := h.useCase.Create(c.Context(), resume.CreateInput{
		Alias:         req.Alias,
		TemplateID:    req.TemplateID,
		ProposalID:    req.ProposalID,
		ProfileID:     req.ProfileID,
		ExperienceIDs: req.ExperienceIDs,
	})
	if err != nil {
		return presenter.Fail(c, err, "failed to create resume")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get
// @Summary Get resume
// @Tags    resumes
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Success 200 {object} resume.View
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Get(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to get resume")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List
// @Summary List resumes
// @Tags    resumes
// @Produce json
// @Security BearerAuth
// @Param   limit query int false "limit (default 50, max 200)"
// @Param   offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router  /resumes [get]
func (h *ResumeHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, defaultLimit)
	items, err := h.useCase.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Fail(c, err, "failed to list resumes")
	}
	return presenter.List(c, items, limit, offset)
}

type updateResumeRequest struct {
	Alias         *string  `json:"alias"`
	Status        *string  `json:"status"`
	TemplateID    *int64   `json:"template_id"`
	ProposalID    *int64   `json:"proposal_id"`
	ProfileID     *int64   `json:"profile_id"`
	ExperienceIDs *[]int64 `json:"experience_ids"`
}

// Update
// @Summary Update resume
// @Description experience_ids replaces the set; rows of kept experiences keep their overrides.
// @Tags    resumes
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Param   input body updateResumeRequest true "fields to change; proposal_id/profile_id 0 detaches"
// @Success 200 {object} resume.View
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [patch]
func (h *ResumeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req updateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	out, err := h.useCase.Update(c.Context(), id, resume.Update{
		Alias:         req.Alias,
		Status:        req.Status,
		TemplateID:    req.TemplateID,
		ProposalID:    req.ProposalID,
		ProfileID:     req.ProfileID,
		ExperienceIDs: req.ExperienceIDs,
	})
	if err != nil {
		return presenter.Fail(c, err, "failed to update resume")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete
// @Summary Delete resume
// @Tags    resumes
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	if err := h.useCase.Delete(c.Context(), id); err != nil {
		return presenter.Fail(c, err, "failed to delete resume")
	}
	return c.SendStatus(http.StatusNoContent)
}

type regenerateRequest struct {
	Overrides map[string]any `json:"overrides"`
}

// Regenerate re-renders the resume from current data.
// @Summary Regenerate resume
// @Tags    resumes
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Param   input body regenerateRequest false "variables deep-merged over the resolved ones"
// @Success 200 {object} resume.Resume
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/regenerate [post]
func (h *ResumeHandler) Regenerate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req regenerateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c)
		}
	}
	out, err := h.useCase.Regenerate(c.Context(), id, req.Overrides)
	if err != nil {
		return presenter.Fail(c, err, "failed to regenerate resume")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Commit stores the current description choices by re-rendering.
// @Summary Commit description selections
// @Tags    resumes
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Success 200 {object} resume.Resume
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/commit [post]
func (h *ResumeHandler) Commit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Regenerate(c.Context(), id, nil)
	if err != nil {
		return presenter.Fail(c, err, "failed to commit selections")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Variables
// @Summary Resolved template variables
// @Tags    resumes
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/variables [get]
func (h *ResumeHandler) Variables(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Variables(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to resolve variables")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type reorderRequest struct {
	Experiences []resume.OrderItem `json:"experiences"`
}

// Reorder
// @Summary Reorder experiences
// @Description Ids that are not part of the resume are skipped.
// @Tags    resumes
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Param   input body reorderRequest true "new display orders"
// @Success 200 {object} resume.View
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/reorder [post]
func (h *ResumeHandler) Reorder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	out, err := h.useCase.Reorder(c.Context(), id, req.Experiences)
	if err != nil {
		return presenter.Fail(c, err, "failed to reorder experiences")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type toggleAIRequest struct {
	UseAIVersion bool `json:"use_ai_version"`
}

// ToggleAI
// @Summary Choose the AI description
// @Tags    resumes
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Param   experienceId path int true "experience id"
// @Param   input body toggleAIRequest true "flag"
// @Success 200 {object} resume.DetailView
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/experiences/{experienceId}/toggle-ai [post]
func (h *ResumeHandler) ToggleAI(c *fiber.Ctx) error {
	id, expID, err := resumeExperienceIDs(c)
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req toggleAIRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	out, err := h.useCase.ToggleAI(c.Context(), id, expID, req.UseAIVersion)
	if err != nil {
		return presenter.Fail(c, err, "failed to toggle AI version")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type overrideRequest struct {
	Description string `json:"overridden_project_description"`
}

// SetOverride
// @Summary Edit the description for this resume
// @Description An empty text clears the override.
// @Tags    resumes
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Param   experienceId path int true "experience id"
// @Param   input body overrideRequest true "override text"
// @Success 200 {object} resume.DetailView
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/experiences/{experienceId}/override [put]
func (h *ResumeHandler) SetOverride(c *fiber.Ctx) error {
	id, expID, err := resumeExperienceIDs(c)
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req overrideRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	out, err := h.useCase.SetOverride(c.Context(), id, expID, req.Description)
	if err != nil {
		return presenter.Fail(c, err, "failed to save override")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type rewriteRequest struct {
	Source string `json:"source_description"`
	Model  string `json:"model"`
}

// Rewrite asks the model to tailor one experience description to the proposal.
// @Summary AI rewrite of one experience
// @Description A failed model call returns 200 with saved=false and the original text.
// @Tags    resumes
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Param   experienceId path int true "experience id"
// @Param   input body rewriteRequest false "optional source text and model"
// @Success 200 {object} resume.RewriteOutcome
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/experiences/{experienceId}/rewrite [post]
func (h *ResumeHandler) Rewrite(c *fiber.Ctx) error {
	id, expID, err := resumeExperienceIDs(c)
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req rewriteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c)
		}
	}
	out, err := h.useCase.Rewrite(c.Context(), id, expID, resume.RewriteOptions{
		Source: req.Source,
		Model:  req.Model,
	})
	if err != nil {
		return presenter.Fail(c, err, "failed to rewrite experience")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

type promptRewriteRequest struct {
	Prompt string `json:"custom_prompt"`
	Model  string `json:"model"`
}

// RewriteWithPrompt
// @Summary AI rewrite with a custom instruction
// @Tags    resumes
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Param   experienceId path int true "experience id"
// @Param   input body promptRewriteRequest true "instruction"
// @Success 200 {object} resume.RewriteOutcome
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/experiences/{experienceId}/rewrite-with-prompt [post]
func (h *ResumeHandler) RewriteWithPrompt(c *fiber.Ctx) error {
	id, expID, err := resumeExperienceIDs(c)
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req promptRewriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	out, err := h.useCase.Rewrite(c.Context(), id, expID, resume.RewriteOptions{
		Instruction:        req.Prompt,
		Model:              req.Model,
		RequireInstruction: true,
	})
	if err != nil {
		return presenter.Fail(c, err, "failed to rewrite experience")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// BulkRewrite
// @Summary AI rewrite of every experience
// @Tags    resumes
// @Produce json
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Success 200 {object} resume.BulkOutcome
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/bulk-rewrite [post]
func (h *ResumeHandler) BulkRewrite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.BulkRewrite(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to rewrite experiences")
	}
	if len(out.Failed) > 0 {
		h.log.Warn("bulk rewrite finished with failures",
			zap.Int64("resume_id", id),
			zap.Int("updated", len(out.Updated)),
			zap.Int("failed", len(out.Failed)))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// PDF
// @Summary Download resume as PDF
// @Tags    resumes
// @Produce application/pdf
// @Security BearerAuth
// @Param   id path int true "resume id"
// @Success 200 {file} binary
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/pdf [get]
func (h *ResumeHandler) PDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	name, data, err := h.useCase.ExportPDF(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to export PDF")
	}
	return sendPDF(c, name, data)
}

func resumeExperienceIDs(c *fiber.Ctx) (int64, int64, error) {
	id, err := paramID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	expID, err := paramID(c, "experienceId")
	if err != nil {
		return 0, 0, err
	}
	return id, expID, nil
}
