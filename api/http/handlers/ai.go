package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/rewrite"
)

// AIStatus reports the text-generation configuration.
type AIStatus interface {
	Status() rewrite.Status
}

type AIHandler struct {
	status AIStatus
}

func NewAIHandler(status AIStatus) *AIHandler { return &AIHandler{status: status} }

// Status
// @Summary AI service status
// @Tags    ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} rewrite.Status
// @Router  /ai/status [get]
func (h *AIHandler) Status(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, h.status.Status())
}

type modelsResponse struct {
	Models  []rewrite.ModelInfo `json:"models"`
	Default string              `json:"default"`
}

// Models
// @Summary Available AI models
// @Tags    ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} modelsResponse
// @Router  /ai/models [get]
func (h *AIHandler) Models(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, modelsResponse{
		Models:  rewrite.Models,
		Default: h.status.Status().Model,
	})
}
