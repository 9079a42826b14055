package project

import (
	"context"
	"strings"
	"time"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

// Project is a showcase project that project sheets are generated from.
type Project struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Date          *time.Time `json:"date"`
	ContractValue *float64   `json:"contract_value"`
	Location      string     `json:"location"`
	ClientID      *int64     `json:"client_id"`
	ContactID     *int64     `json:"contact_id"`
	MainImageID   *int64     `json:"main_image_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.Validation("name is required")
	}
	if p.ContractValue != nil && *p.ContractValue < 0 {
		return apperrors.Validation("contract_value must not be negative")
	}
	return nil
}

type Update struct {
	Name          *string
	Description   *string
	Date          *time.Time
	ContractValue *float64
	Location      *string
	ClientID      *int64 // 0 detaches
	ContactID     *int64 // 0 detaches
	MainImageID   *int64 // 0 detaches
}

func (u Update) Apply(p *Project) {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Date != nil {
		p.Date = u.Date
	}
	if u.ContractValue != nil {
		p.ContractValue = u.ContractValue
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.ClientID != nil {
		p.ClientID = optionalID(*u.ClientID)
	}
	if u.ContactID != nil {
		p.ContactID = optionalID(*u.ContactID)
	}
	if u.MainImageID != nil {
		p.MainImageID = optionalID(*u.MainImageID)
	}
}

func optionalID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id int64) (Project, error)
	List(ctx context.Context, limit, offset int) ([]Project, error)
	Update(ctx context.Context, p Project) error
	Delete(ctx context.Context, id int64) error
}
