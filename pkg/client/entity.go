package client

import (
	"context"
	"strings"
	"time"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

// Client is an organization that commissions engagements.
type Client struct {
	ID              int64      `json:"id"`
	ClientName      string     `json:"client_name"`
	Website         string     `json:"website"`
	MainEmail       string     `json:"main_email"`
	MainPhone       string     `json:"main_phone"`
	MainContactID   *int64     `json:"main_contact_id"`
	MainContactName string     `json:"main_contact_name,omitempty"` // read-only, joined from contacts
	LastContactDate *time.Time `json:"last_contact_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Contact is a person, optionally working for a client.
type Contact struct {
	ID              int64      `json:"id"`
	ContactName     string     `json:"contact_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	ClientID        *int64     `json:"client_id"`
	LastContactDate *time.Time `json:"last_contact_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Update lists the client fields a caller may change; nil means "keep".
type Update struct {
	ClientName      *string
	Website         *string
	MainEmail       *string
	MainPhone       *string
	MainContactID   *int64 // 0 detaches
	LastContactDate *time.Time
}

func (u Update) Apply(c *Client) {
	if u.ClientName != nil {
		c.ClientName = strings.TrimSpace(*u.ClientName)
	}
	if u.Website != nil {
		c.Website = *u.Website
	}
	if u.MainEmail != nil {
		c.MainEmail = *u.MainEmail
	}
	if u.MainPhone != nil {
		c.MainPhone = *u.MainPhone
	}
	if u.MainContactID != nil {
		c.MainContactID = optionalID(*u.MainContactID)
	}
	if u.LastContactDate != nil {
		c.LastContactDate = u.LastContactDate
	}
}

type ContactUpdate struct {
	ContactName     *string
	Email           *string
	Phone           *string
	ClientID        *int64 // 0 detaches
	LastContactDate *time.Time
}

func (u ContactUpdate) Apply(c *Contact) {
	if u.ContactName != nil {
		c.ContactName = strings.TrimSpace(*u.ContactName)
	}
	if u.Email != nil {
		c.Email = strings.TrimSpace(*u.Email)
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.ClientID != nil {
		c.ClientID = optionalID(*u.ClientID)
	}
	if u.LastContactDate != nil {
		c.LastContactDate = u.LastContactDate
	}
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.ClientName) == "" {
		return apperrors.Validation("client_name is required")
	}
	return nil
}

func (c Contact) Validate() error {
	if strings.TrimSpace(c.ContactName) == "" {
		return apperrors.Validation("contact_name is required")
	}
	return nil
}

func optionalID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

// Repository persists clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id int64) (Client, error)
	List(ctx context.Context, limit, offset int) ([]Client, error)
	Update(ctx context.Context, c Client) error
	Delete(ctx context.Context, id int64) error
}

// ContactRepository persists contacts.
type ContactRepository interface {
	Create(ctx context.Context, c *Contact) error
	Get(ctx context.Context, id int64) (Contact, error)
	List(ctx context.Context, clientID *int64, limit, offset int) ([]Contact, error)
	Update(ctx context.Context, c Contact) error
	Delete(ctx context.Context, id int64) error
}
