package template

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/artem13815/docmaker/pkg/apperrors"
	"github.com/artem13815/docmaker/pkg/logger"
	"github.com/artem13815/docmaker/pkg/render"
)

// BundledName is the name given to the default template created on first use.
const BundledName = "Default Resume"

type UseCase interface {
	Create(ctx context.Context, t Template) (Template, error)
	Get(ctx context.Context, id int64) (Template, error)
	List(ctx context.Context, limit, offset int) ([]Template, error)
	Update(ctx context.Context, id int64, upd Update) (Template, error)
	Delete(ctx context.Context, id int64) error
	// Default returns the default template, creating it from the bundled
	// resume template when none exists yet.
	Default(ctx context.Context) (Template, error)
	SetDefault(ctx context.Context, id int64) (Template, error)
}

type service struct {
	repo     Repository
	compiler Compiler
	log      *zap.Logger
}

func NewService(repo Repository, compiler Compiler, log *zap.Logger) UseCase {
	return &service{repo: repo, compiler: compiler, log: logger.OrNop(log).Named("template")}
}

func (s *service) Create(ctx context.Context, t Template) (Template, error) {
	if err := s.validate(t); err != nil {
		return Template{}, err
	}
	t.Version = 1
	if err := s.repo.Create(ctx, &t); err != nil {
		return Template{}, err
	}
	return s.repo.Get(ctx, t.ID)
}

func (s *service) Get(ctx context.Context, id int64) (Template, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Template, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Update(ctx context.Context, id int64, upd Update) (Template, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return Template{}, err
	}
	upd.Apply(&t)
	if err := s.validate(t); err != nil {
		return Template{}, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return Template{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Default(ctx context.Context) (Template, error) {
	t, err := s.repo.GetDefault(ctx)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return Template{}, err
	}

	src, err := render.Bundled(render.DefaultResumeTemplate)
	if err != nil {
		return Template{}, err
	}
	t = Template{
		Name:        BundledName,
		Description: "Bundled resume layout",
		Content:     src,
		IsDefault:   true,
		Version:     1,
	}
	if err := s.repo.Create(ctx, &t); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// another request bootstrapped it first
			return s.repo.GetDefault(ctx)
		}
		return Template{}, fmt.Errorf("bootstrap default template: %w", err)
	}
	s.log.Info("default template bootstrapped", zap.Int64("template_id", t.ID))
	return t, nil
}

func (s *service) SetDefault(ctx context.Context, id int64) (Template, error) {
	if err := s.repo.SetDefault(ctx, id); err != nil {
		return Template{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *service) validate(t Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.compiler.Compile(t.Content); err != nil {
		return apperrors.Validation("content: %v", err)
	}
	return nil
}
