package client

import "context"

// UseCase manages clients and their contacts.
type UseCase interface {
	Create(ctx context.Context, c Client) (Client, error)
	Get(ctx context.Context, id int64) (Client, error)
	List(ctx context.Context, limit, offset int) ([]Client, error)
	Update(ctx context.Context, id int64, upd Update) (Client, error)
	Delete(ctx context.Context, id int64) error

	CreateContact(ctx context.Context, c Contact) (Contact, error)
	GetContact(ctx context.Context, id int64) (Contact, error)
	ListContacts(ctx context.Context, clientID *int64, limit, offset int) ([]Contact, error)
	UpdateContact(ctx context.Context, id int64, upd ContactUpdate) (Contact, error)
	DeleteContact(ctx context.Context, id int64) error
}

type service struct {
	clients  Repository
	contacts ContactRepository
}

func NewService(clients Repository, contacts ContactRepository) UseCase {
	return &service{clients: clients, contacts: contacts}
}

func (s *service) Create(ctx context.Context, c Client) (Client, error) {
	if err := c.Validate(); err != nil {
		return Client{}, err
	}
	if err := s.clients.Create(ctx, &c); err != nil {
		return Client{}, err
	}
	return s.clients.Get(ctx, c.ID)
}

func (s *service) Get(ctx context.Context, id int64) (Client, error) {
	return s.clients.Get(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Client, error) {
	return s.clients.List(ctx, limit, offset)
}

func (s *service) Update(ctx context.Context, id int64, upd Update) (Client, error) {
	c, err := s.clients.Get(ctx, id)
	if err != nil {
		return Client{}, err
	}
	upd.Apply(&c)
	if err := c.Validate(); err != nil {
		return Client{}, err
	}
	if err := s.clients.Update(ctx, c); err != nil {
		return Client{}, err
	}
	return s.clients.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.clients.Delete(ctx, id)
}

func (s *service) CreateContact(ctx context.Context, c Contact) (Contact, error) {
	if err := c.Validate(); err != nil {
		return Contact{}, err
	}
	if err := s.contacts.Create(ctx, &c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (s *service) GetContact(ctx context.Context, id int64) (Contact, error) {
	return s.contacts.Get(ctx, id)
}

func (s *service) ListContacts(ctx context.Context, clientID *int64, limit, offset int) ([]Contact, error) {
	return s.contacts.List(ctx, clientID, limit, offset)
}

func (s *service) UpdateContact(ctx context.Context, id int64, upd ContactUpdate) (Contact, error) {
	c, err := s.contacts.Get(ctx, id)
	if err != nil {
		return Contact{}, err
	}
	upd.Apply(&c)
	if err := c.Validate(); err != nil {
		return Contact{}, err
	}
	if err := s.contacts.Update(ctx, c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (s *service) DeleteContact(ctx context.Context, id int64) error {
	return s.contacts.Delete(ctx, id)
}
