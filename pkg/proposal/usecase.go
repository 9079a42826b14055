package proposal

import "context"

type UseCase interface {
	Create(ctx context.Context, p Proposal) (Proposal, error)
	Get(ctx context.Context, id int64) (Proposal, error)
	List(ctx context.Context, limit, offset int) ([]Proposal, error)
	Update(ctx context.Context, id int64, upd Update) (Proposal, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, p Proposal) (Proposal, error) {
	if err := p.Validate(); err != nil {
		return Proposal{}, err
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return Proposal{}, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id int64) (Proposal, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Proposal, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Update(ctx context.Context, id int64, upd Update) (Proposal, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Proposal{}, err
	}
	upd.Apply(&p)
	if err := p.Validate(); err != nil {
		return Proposal{}, err
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Proposal{}, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
