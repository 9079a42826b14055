package proposal

import (
	"context"
	"strings"
	"time"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

const StatusDraft = "draft"

// Proposal is a business-development request that resumes and sheets respond to.
// Context doubles as the alignment prompt for AI rewriting.
type Proposal struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Context      string     `json:"context"`
	ProjectBrief string     `json:"project_brief"`
	Scope        string     `json:"scope"`
	Location     string     `json:"location"`
	Status       string     `json:"status"`
	DueDate      *time.Time `json:"due_date"`
	ClientID     *int64     `json:"client_id"`
	ContactID    *int64     `json:"contact_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (p Proposal) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.Validation("name is required")
	}
	return nil
}

// AlignmentContext is the text used to steer rewrites: the context, or the name when empty.
func (p Proposal) AlignmentContext() string {
	if c := strings.TrimSpace(p.Context); c != "" {
		return c
	}
	return p.Name
}

type Update struct {
	Name         *string
	Context      *string
	ProjectBrief *string
	Scope        *string
	Location     *string
	Status       *string
	DueDate      *time.Time
	ClientID     *int64 // 0 detaches
	ContactID    *int64 // 0 detaches
}

func (u Update) Apply(p *Proposal) {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Context != nil {
		p.Context = *u.Context
	}
	if u.ProjectBrief != nil {
		p.ProjectBrief = *u.ProjectBrief
	}
	if u.Scope != nil {
		p.Scope = *u.Scope
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Status != nil {
		p.Status = strings.TrimSpace(*u.Status)
	}
	if u.DueDate != nil {
		p.DueDate = u.DueDate
	}
	if u.ClientID != nil {
		p.ClientID = optionalID(*u.ClientID)
	}
	if u.ContactID != nil {
		p.ContactID = optionalID(*u.ContactID)
	}
}

func optionalID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

type Repository interface {
	Create(ctx context.Context, p *Proposal) error
	Get(ctx context.Context, id int64) (Proposal, error)
	List(ctx context.Context, limit, offset int) ([]Proposal, error)
	Update(ctx context.Context, p Proposal) error
	Delete(ctx context.Context, id int64) error
}
