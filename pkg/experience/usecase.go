package experience

import "context"

type UseCase interface {
	Create(ctx context.Context, e Experience) (Experience, error)
	Get(ctx context.Context, id int64) (Experience, error)
	List(ctx context.Context, clientID *int64, limit, offset int) ([]Experience, error)
	Update(ctx context.Context, id int64, upd Update) (Experience, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, e Experience) (Experience, error) {
	if err := e.Validate(); err != nil {
		return Experience{}, err
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return Experience{}, err
	}
	return e, nil
}

func (s *service) Get(ctx context.Context, id int64) (Experience, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, clientID *int64, limit, offset int) ([]Experience, error) {
	return s.repo.List(ctx, clientID, limit, offset)
}

func (s *service) Update(ctx context.Context, id int64, upd Update) (Experience, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return Experience{}, err
	}
	upd.Apply(&e)
	if err := e.Validate(); err != nil {
		return Experience{}, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return Experience{}, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
