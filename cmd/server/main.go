// @title         docmaker API
// @version       1.0
// @description   Сервис генерации резюме и проектных листов из шаблонов с переписыванием опыта через LLM и экспортом в PDF.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "github.com/artem13815/docmaker/docs"

	// internal imports
	"github.com/artem13815/docmaker/api/http"
	"github.com/artem13815/docmaker/api/http/handlers"
	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/auth"
	"github.com/artem13815/docmaker/pkg/client"
	"github.com/artem13815/docmaker/pkg/config"
	"github.com/artem13815/docmaker/pkg/experience"
	"github.com/artem13815/docmaker/pkg/health"
	"github.com/artem13815/docmaker/pkg/health/checkers"
	"github.com/artem13815/docmaker/pkg/llm"
	"github.com/artem13815/docmaker/pkg/llm/openrouter"
	"github.com/artem13815/docmaker/pkg/logger"
	"github.com/artem13815/docmaker/pkg/media"
	"github.com/artem13815/docmaker/pkg/pdf"
	"github.com/artem13815/docmaker/pkg/profile"
	"github.com/artem13815/docmaker/pkg/project"
	"github.com/artem13815/docmaker/pkg/projectsheet"
	"github.com/artem13815/docmaker/pkg/proposal"
	"github.com/artem13815/docmaker/pkg/render"
	pgrepo "github.com/artem13815/docmaker/pkg/repository/postgres"
	"github.com/artem13815/docmaker/pkg/resume"
	"github.com/artem13815/docmaker/pkg/rewrite"
	"github.com/artem13815/docmaker/pkg/security/jwt"
	"github.com/artem13815/docmaker/pkg/storage/postgres"
	"github.com/artem13815/docmaker/pkg/template"
	"github.com/artem13815/docmaker/pkg/variables"
)

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, zl)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Repositories also ensure the schema, so order follows foreign keys.
	userRepo, err := pgrepo.NewUserRepository(pool)
	if err != nil {
		return err
	}
	clientRepo, err := pgrepo.NewClientRepository(pool)
	if err != nil {
		return err
	}
	contactRepo := pgrepo.NewContactRepository(pool)
	experienceRepo, err := pgrepo.NewExperienceRepository(pool)
	if err != nil {
		return err
	}
	proposalRepo, err := pgrepo.NewProposalRepository(pool)
	if err != nil {
		return err
	}
	profileRepo, err := pgrepo.NewProfileRepository(pool)
	if err != nil {
		return err
	}
	projectRepo, err := pgrepo.NewProjectRepository(pool)
	if err != nil {
		return err
	}
	templateRepo, err := pgrepo.NewTemplateRepository(pool)
	if err != nil {
		return err
	}
	resumeRepo, err := pgrepo.NewResumeRepository(pool)
	if err != nil {
		return err
	}
	sheetRepo, err := pgrepo.NewProjectSheetRepository(pool)
	if err != nil {
		return err
	}

	// Token generator
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authUC := auth.NewAuthService(userRepo, jwtGen)

	// Collaborators: renderer, PDF printer, text generation.
	engine := render.New()
	exporter := pdf.NewExporter(cfg.PDF.ChromePath, cfg.PDF.Timeout(), zl)
	urls := media.NewURLBuilder(cfg.Media.BaseURL)

	var model llm.ChatModel
	if cfg.AI.APIKey != "" {
		model = openrouter.New(openrouter.Options{
			APIKey:   cfg.AI.APIKey,
			BaseURL:  cfg.AI.BaseURL,
			Model:    cfg.AI.Model,
			AppTitle: cfg.AI.AppTitle,
			Referer:  cfg.AI.Referer,
			Timeout:  cfg.AI.Timeout(),
		})
	} else {
		zl.Warn("AI rewriting disabled: OPENROUTER_API_KEY is not set")
	}
	rewriter := rewrite.New(model, zl)

	clientUC := client.NewService(clientRepo, contactRepo)
	templateUC := template.NewService(templateRepo, engine, zl)
	resumeUC := resume.NewService(resume.Deps{
		Resumes:     resumeRepo,
		Experiences: experienceRepo,
		Proposals:   proposalRepo,
		Profiles:    profileRepo,
		Templates:   templateUC,
		Resolver:    variables.NewResolver(clientRepo, urls),
		Renderer:    engine,
		Rewriter:    rewriter,
		Exporter:    exporter,
		Log:         zl,
	})
	sheetUC := projectsheet.NewService(sheetRepo, projectRepo, clientUC, authUC, engine, exporter, urls, zl)

	// Health service: postgres is required, the rest is informational
	readiness := health.NewService(
		[]health.Checker{checkers.NewPostgresChecker(pool)},
		checkers.NewBrowserChecker(exporter),
		checkers.NewAIChecker(rewriter.Configured),
	)

	app := fiber.New(fiber.Config{
		AppName:      "docmaker",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return presenter.Error(c, fe.Code, fe.Message)
			}
			return presenter.Fail(c, err, "internal error")
		},
	})
	app.Use(http.RequestLogger(zl))

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)

	http.Register(app, http.Handlers{
		Auth:         handlers.NewAuthHandler(authUC),
		Health:       handlers.NewHealthHandler(readiness),
		Clients:      handlers.NewClientHandler(clientUC),
		Experiences:  handlers.NewExperienceHandler(experience.NewService(experienceRepo)),
		Proposals:    handlers.NewProposalHandler(proposal.NewService(proposalRepo), resumeUC),
		Profiles:     handlers.NewProfileHandler(profile.NewService(profileRepo)),
		Projects:     handlers.NewProjectHandler(project.NewService(projectRepo)),
		Templates:    handlers.NewTemplateHandler(templateUC, resumeUC),
		Resumes:      handlers.NewResumeHandler(resumeUC, zl),
		ProjectSheet: handlers.NewProjectSheetHandler(sheetUC),
		AI:           handlers.NewAIHandler(rewriter),
	}, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	errCh := make(chan error, 1)
	go func() {
		zl.Info("HTTP server listening", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		zl.Info("shutting down", zap.String("signal", sig.String()))
	}
	return app.ShutdownWithTimeout(10 * time.Second)
}
