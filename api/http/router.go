package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/docmaker/api/http/handlers"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Clients      *handlers.ClientHandler
	Experiences  *handlers.ExperienceHandler
	Proposals    *handlers.ProposalHandler
	Profiles     *handlers.ProfileHandler
	Projects     *handlers.ProjectHandler
	Templates    *handlers.TemplateHandler
	Resumes      *handlers.ResumeHandler
	ProjectSheet *handlers.ProjectSheetHandler
	AI           *handlers.AIHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Get("/me", authMW, h.Auth.Me)

	// всё остальное только с токеном
	p := v1.Group("", authMW)

	p.Post("/clients", h.Clients.Create)
	p.Get("/clients", h.Clients.List)
	p.Get("/clients/:id", h.Clients.Get)
	p.Patch("/clients/:id", h.Clients.Update)
	p.Delete("/clients/:id", h.Clients.Delete)

	p.Post("/contacts", h.Clients.CreateContact)
	p.Get("/contacts", h.Clients.ListContacts)
	p.Get("/contacts/:id", h.Clients.GetContact)
	p.Patch("/contacts/:id", h.Clients.UpdateContact)
	p.Delete("/contacts/:id", h.Clients.DeleteContact)

	p.Post("/experiences", h.Experiences.Create)
	p.Get("/experiences", h.Experiences.List)
	p.Get("/experiences/:id", h.Experiences.Get)
	p.Patch("/experiences/:id", h.Experiences.Update)
	p.Delete("/experiences/:id", h.Experiences.Delete)

	p.Post("/proposals", h.Proposals.Create)
	p.Get("/proposals", h.Proposals.List)
	p.Get("/proposals/:id", h.Proposals.Get)
	p.Patch("/proposals/:id", h.Proposals.Update)
	p.Delete("/proposals/:id", h.Proposals.Delete)
	p.Get("/proposals/:id/resumes", h.Proposals.Resumes)

	p.Post("/profiles", h.Profiles.Create)
	p.Get("/profiles", h.Profiles.List)
	p.Get("/profiles/:id", h.Profiles.Get)
	p.Patch("/profiles/:id", h.Profiles.Update)
	p.Delete("/profiles/:id", h.Profiles.Delete)

	p.Post("/projects", h.Projects.Create)
	p.Get("/projects", h.Projects.List)
	p.Get("/projects/:id", h.Projects.Get)
	p.Patch("/projects/:id", h.Projects.Update)
	p.Delete("/projects/:id", h.Projects.Delete)
	p.Post("/projects/:id/sheet", h.ProjectSheet.Create)

	// static paths before /:id
	p.Get("/templates/default", h.Templates.Default)
	p.Post("/templates/preview", h.Templates.Preview)
	p.Post("/templates", h.Templates.Create)
	p.Get("/templates", h.Templates.List)
	p.Get("/templates/:id", h.Templates.Get)
	p.Patch("/templates/:id", h.Templates.Update)
	p.Delete("/templates/:id", h.Templates.Delete)
	p.Post("/templates/:id/default", h.Templates.SetDefault)

	p.Post("/resumes", h.Resumes.Create)
	p.Get("/resumes", h.Resumes.List)
	p.Get("/resumes/:id", h.Resumes.Get)
	p.Patch("/resumes/:id", h.Resumes.Update)
	p.Delete("/resumes/:id", h.Resumes.Delete)
	p.Post("/resumes/:id/regenerate", h.Resumes.Regenerate)
	p.Post("/resumes/:id/commit", h.Resumes.Commit)
	p.Get("/resumes/:id/variables", h.Resumes.Variables)
	p.Post("/resumes/:id/reorder", h.Resumes.Reorder)
	p.Post("/resumes/:id/bulk-rewrite", h.Resumes.BulkRewrite)
	p.Get("/resumes/:id/pdf", h.Resumes.PDF)
	re := p.Group("/resumes/:id/experiences/:experienceId")
	re.Post("/toggle-ai", h.Resumes.ToggleAI)
	re.Put("/override", h.Resumes.SetOverride)
	re.Post("/rewrite", h.Resumes.Rewrite)
	re.Post("/rewrite-with-prompt", h.Resumes.RewriteWithPrompt)

	p.Get("/project-sheets", h.ProjectSheet.List)
	p.Get("/project-sheets/:id", h.ProjectSheet.Get)
	p.Post("/project-sheets/:id/regenerate", h.ProjectSheet.Regenerate)
	p.Delete("/project-sheets/:id", h.ProjectSheet.Delete)
	p.Get("/project-sheets/:id/pdf", h.ProjectSheet.PDF)

	p.Get("/ai/status", h.AI.Status)
	p.Get("/ai/models", h.AI.Models)
}
