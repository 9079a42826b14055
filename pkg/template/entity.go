package template

import (
	"context"
	"strings"
	"time"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

// Template is stored template source text. At most one row is the default.
// Version grows every time Content changes.
type Template struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	IsDefault   bool      `json:"is_default"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return apperrors.Validation("name is required")
	}
	if strings.TrimSpace(t.Content) == "" {
		return apperrors.Validation("content is required")
	}
	return nil
}

type Update struct {
	Name        *string
	Description *string
	Content     *string
}

func (u Update) Apply(t *Template) {
	if u.Name != nil {
		t.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Content != nil && *u.Content != t.Content {
		t.Content = *u.Content
		t.Version++
	}
}

// Repository persists templates. Create with IsDefault set, and SetDefault,
// clear the flag on every other row in the same transaction.
type Repository interface {
	Create(ctx context.Context, t *Template) error
	Get(ctx context.Context, id int64) (Template, error)
	// GetDefault returns apperrors.ErrNotFound when no row is flagged.
	GetDefault(ctx context.Context) (Template, error)
	List(ctx context.Context, limit, offset int) ([]Template, error)
	Update(ctx context.Context, t Template) error
	SetDefault(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// Compiler checks template source before it is stored.
type Compiler interface {
	Compile(source string) error
}
