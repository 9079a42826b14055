package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/proposal"
	"github.com/artem13815/docmaker/pkg/resume"
)

type ProposalHandler struct {
	useCase proposal.UseCase
	resumes resume.UseCase
}

func NewProposalHandler(useCase proposal.UseCase, resumes resume.UseCase) *ProposalHandler {
	return &ProposalHandler{useCase: useCase, resumes: resumes}
}

type proposalRequest struct {
	Name         *string `json:"name"`
	Context      *string `json:"context"`
	ProjectBrief *string `json:"project_brief"`
	Scope        *string `json:"scope"`
	Location     *string `json:"location"`
	Status       *string `json:"status"`
	DueDate      *string `json:"due_date"`
	ClientID     *int64  `json:"client_id"`
	ContactID    *int64  `json:"contact_id"`
}

func (r proposalRequest) update() (proposal.Update, error) {
	due, err := parseDate("due_date", r.DueDate)
	if err != nil {
		return proposal.Update{}, err
	}
	return proposal.Update{
		Name:         r.Name,
		Context:      r.Context,
		ProjectBrief: r.ProjectBrief,
		Scope:        r.Scope,
		Location:     r.Location,
		Status:       r.Status,
		DueDate:      due,
		ClientID:     r.ClientID,
		ContactID:    r.ContactID,
	}, nil
}

// Create
// @Summary Create proposal
// @Tags    proposals
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body proposalRequest true "proposal"
// @Success 201 {object} proposal.Proposal
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /proposals [post]
func (h *ProposalHandler) Create(c *fiber.Ctx) error {
	var req proposalRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	upd, err := req.update()
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var p proposal.Proposal
	upd.Apply(&p)
	out, err := h.useCase.Create(c.Context(), p)
	if err != nil {
		return presenter.Fail(c, err, "failed to create proposal")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get
// @Summary Get proposal
// @Tags    proposals
// @Produce json
// @Security BearerAuth
// @Param   id path int true "proposal id"
// @Success 200 {object} proposal.Proposal
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /proposals/{id} [get]
func (h *ProposalHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Get(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to get proposal")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List
// @Summary List proposals
// @Tags    proposals
// @Produce json
// @Security BearerAuth
// @Param   limit query int false "limit (default 50, max 200)"
// @Param   offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router  /proposals [get]
func (h *ProposalHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, defaultLimit)
	items, err := h.useCase.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Fail(c, err, "failed to list proposals")
	}
	return presenter.List(c, items, limit, offset)
}

// Update
// @Summary Update proposal
// @Tags    proposals
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "proposal id"
// @Param   input body proposalRequest true "fields to change; client_id/contact_id 0 detaches"
// @Success 200 {object} proposal.Proposal
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /proposals/{id} [patch]
func (h *ProposalHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req proposalRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	upd, err := req.update()
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Update(c.Context(), id, upd)
	if err != nil {
		return presenter.Fail(c, err, "failed to update proposal")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete
// @Summary Delete proposal
// @Tags    proposals
// @Security BearerAuth
// @Param   id path int true "proposal id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /proposals/{id} [delete]
func (h *ProposalHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	if err := h.useCase.Delete(c.Context(), id); err != nil {
		return presenter.Fail(c, err, "failed to delete proposal")
	}
	return c.SendStatus(http.StatusNoContent)
}

// Resumes lists resumes generated for a proposal.
// @Summary Resumes of a proposal
// @Tags    proposals
// @Produce json
// @Security BearerAuth
// @Param   id path int true "proposal id"
// @Param   limit query int false "limit (default 50, max 200)"
// @Param   offset query int false "offset"
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /proposals/{id}/resumes [get]
func (h *ProposalHandler) Resumes(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	if _, err := h.useCase.Get(c.Context(), id); err != nil {
		return presenter.Fail(c, err, "failed to get proposal")
	}
	limit, offset := parseLimitOffset(c, defaultLimit)
	items, err := h.resumes.ListByProposal(c.Context(), id, limit, offset)
	if err != nil {
		return presenter.Fail(c, err, "failed to list resumes")
	}
	return presenter.List(c, items, limit, offset)
}
