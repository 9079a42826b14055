package project

import "context"

type UseCase interface {
	Create(ctx context.Context, p Project) (Project, error)
	Get(ctx context.Context, id int64) (Project, error)
	List(ctx context.Context, limit, offset int) ([]Project, error)
	Update(ctx context.Context, id int64, upd Update) (Project, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, p Project) (Project, error) {
	if err := p.Validate(); err != nil {
		return Project{}, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id int64) (Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Project, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Update(ctx context.Context, id int64, upd Update) (Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}
	upd.Apply(&p)
	if err := p.Validate(); err != nil {
		return Project{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
