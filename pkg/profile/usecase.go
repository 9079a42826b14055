package profile

import "context"

type UseCase interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	Get(ctx context.Context, id int64) (Profile, error)
	List(ctx context.Context, q string, limit, offset int) ([]Profile, error)
	Update(ctx context.Context, id int64, upd Update) (Profile, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, p Profile) (Profile, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id int64) (Profile, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, q string, limit, offset int) ([]Profile, error) {
	return s.repo.List(ctx, q, limit, offset)
}

func (s *service) Update(ctx context.Context, id int64, upd Update) (Profile, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	upd.Apply(&p)
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
