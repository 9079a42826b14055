package experience

import (
	"context"
	"strings"
	"time"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

// Experience is a past client engagement, reusable across resumes.
// A nil DateCompleted means the engagement is still running.
type Experience struct {
	ID                 int64      `json:"id"`
	ProjectName        string     `json:"project_name"`
	ProjectDescription string     `json:"project_description"`
	ProjectValue       *float64   `json:"project_value"`
	DateStarted        *time.Time `json:"date_started"`
	DateCompleted      *time.Time `json:"date_completed"`
	Location           string     `json:"location"`
	Tags               string     `json:"tags"`
	ClientID           int64      `json:"client_id"`
	ContactID          *int64     `json:"contact_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (e Experience) Validate() error {
	if strings.TrimSpace(e.ProjectName) == "" {
		return apperrors.Validation("project_name is required")
	}
	if e.ClientID <= 0 {
		return apperrors.Validation("client_id is required")
	}
	if e.DateStarted != nil && e.DateCompleted != nil && e.DateCompleted.Before(*e.DateStarted) {
		return apperrors.Validation("date_completed is before date_started")
	}
	return nil
}

// Update lists the experience fields a caller may change; nil means "keep".
type Update struct {
	ProjectName        *string
	ProjectDescription *string
	ProjectValue       *float64
	DateStarted        *time.Time
	DateCompleted      *time.Time
	Ongoing            bool // clears date_completed
	Location           *string
	Tags               *string
	ClientID           *int64
	ContactID          *int64 // 0 detaches
}

func (u Update) Apply(e *Experience) {
	if u.ProjectName != nil {
		e.ProjectName = strings.TrimSpace(*u.ProjectName)
	}
	if u.ProjectDescription != nil {
		e.ProjectDescription = *u.ProjectDescription
	}
	if u.ProjectValue != nil {
		e.ProjectValue = u.ProjectValue
	}
	if u.DateStarted != nil {
		e.DateStarted = u.DateStarted
	}
	if u.DateCompleted != nil {
		e.DateCompleted = u.DateCompleted
	}
	if u.Ongoing {
		e.DateCompleted = nil
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.Tags != nil {
		e.Tags = *u.Tags
	}
	if u.ClientID != nil {
		e.ClientID = *u.ClientID
	}
	if u.ContactID != nil {
		if *u.ContactID <= 0 {
			e.ContactID = nil
		} else {
			id := *u.ContactID
			e.ContactID = &id
		}
	}
}

// Repository persists experiences.
type Repository interface {
	Create(ctx context.Context, e *Experience) error
	Get(ctx context.Context, id int64) (Experience, error)
	// GetMany returns the experiences found among ids, keyed by id.
	GetMany(ctx context.Context, ids []int64) (map[int64]Experience, error)
	List(ctx context.Context, clientID *int64, limit, offset int) ([]Experience, error)
	Update(ctx context.Context, e Experience) error
	Delete(ctx context.Context, id int64) error
}
