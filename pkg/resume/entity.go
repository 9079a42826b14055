package resume

import (
	"context"
	"time"

	"github.com/artem13815/docmaker/pkg/experience"
)

const StatusDraft = "draft"

// Resume — сгенерированный документ: шаблон, предложение, профиль и упорядоченный набор опыта.
// GeneratedContent is nil until the first render is stored.
type Resume struct {
	ID               int64     `json:"id"`
	Alias            string    `json:"alias"`
	Status           string    `json:"status"`
	GeneratedContent *string   `json:"generated_content"`
	TemplateID       int64     `json:"template_id"`
	ProposalID       *int64    `json:"proposal_id"`
	ProfileID        *int64    `json:"profile_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ExperienceDetail связывает резюме с опытом и хранит правки описания для этого резюме.
type ExperienceDetail struct {
	ResumeID               int64  `json:"resume_id"`
	ExperienceID           int64  `json:"experience_id"`
	OverriddenDescription  string `json:"overridden_project_description"`
	AIRewrittenDescription string `json:"ai_rewritten_description"`
	UseAIVersion           bool   `json:"use_ai_version"`
	DisplayOrder           int    `json:"display_order"`
}

// EffectiveDescription is the text shown for an experience inside one resume:
// the AI rewrite when selected and present, else the override, else original.
func EffectiveDescription(d ExperienceDetail, original string) string {
	if d.UseAIVersion && d.AIRewrittenDescription != "" {
		return d.AIRewrittenDescription
	}
	if d.OverriddenDescription != "" {
		return d.OverriddenDescription
	}
	return original
}

// MergeExperienceSet replaces the experience set with ids. Rows for ids that
// stay keep their override, AI text and flag; display order follows ids.
func MergeExperienceSet(resumeID int64, existing []ExperienceDetail, ids []int64) []ExperienceDetail {
	byID := make(map[int64]ExperienceDetail, len(existing))
	for _, d := range existing {
		byID[d.ExperienceID] = d
	}
	out := make([]ExperienceDetail, 0, len(ids))
	for i, id := range ids {
		d, ok := byID[id]
		if !ok {
			d = ExperienceDetail{ExperienceID: id}
		}
		d.ResumeID = resumeID
		d.DisplayOrder = i
		out = append(out, d)
	}
	return out
}

// DetailView is a detail row with its experience and the resulting description.
type DetailView struct {
	ExperienceDetail
	Experience         experience.Experience `json:"experience"`
	CurrentDescription string                `json:"current_description"`
}

func newDetailView(d ExperienceDetail, e experience.Experience) DetailView {
	return DetailView{
		ExperienceDetail:   d,
		Experience:         e,
		CurrentDescription: EffectiveDescription(d, e.ProjectDescription),
	}
}

// View is a resume with its experiences in display order.
type View struct {
	Resume
	Experiences []DetailView `json:"experiences"`
}

// CreateInput describes a new resume. ExperienceIDs order is the display order.
type CreateInput struct {
	Alias         string
	TemplateID    *int64
	ProposalID    *int64
	ProfileID     *int64
	ExperienceIDs []int64
}

// Update lists the resume fields a caller may change; nil means "keep".
type Update struct {
	Alias         *string
	Status        *string
	TemplateID    *int64
	ProposalID    *int64 // 0 detaches
	ProfileID     *int64 // 0 detaches
	ExperienceIDs *[]int64
}

type OrderItem struct {
	ExperienceID int64 `json:"experience_id"`
	DisplayOrder int   `json:"display_order"`
}

// Repository — порт хранения резюме и строк опыта.
type Repository interface {
	// Create inserts r and its details in one transaction and fills r.ID.
	Create(ctx context.Context, r *Resume, details []ExperienceDetail) error
	Get(ctx context.Context, id int64) (Resume, error)
	List(ctx context.Context, limit, offset int) ([]Resume, error)
	ListByProposal(ctx context.Context, proposalID int64, limit, offset int) ([]Resume, error)
	// Update stores r. A non-nil details replaces the experience set in the same transaction.
	Update(ctx context.Context, r Resume, details []ExperienceDetail) error
	SaveContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error

	// Details returns the rows of a resume ordered by display order.
	Details(ctx context.Context, resumeID int64) ([]ExperienceDetail, error)
	GetDetail(ctx context.Context, resumeID, experienceID int64) (ExperienceDetail, error)
	UpdateDetail(ctx context.Context, d ExperienceDetail) error
	// Reorder sets display orders; ids not in the resume are skipped.
	Reorder(ctx context.Context, resumeID int64, items []OrderItem) error
}
