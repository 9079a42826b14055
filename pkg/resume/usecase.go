package resume

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/artem13815/docmaker/pkg/apperrors"
	"github.com/artem13815/docmaker/pkg/experience"
	"github.com/artem13815/docmaker/pkg/logger"
	"github.com/artem13815/docmaker/pkg/profile"
	"github.com/artem13815/docmaker/pkg/proposal"
	"github.com/artem13815/docmaker/pkg/rewrite"
	"github.com/artem13815/docmaker/pkg/template"
	"github.com/artem13815/docmaker/pkg/variables"
)

// UseCase orchestrates resume generation: entities in, rendered HTML persisted.
type UseCase interface {
	Create(ctx context.Context, in CreateInput) (View, error)
	Get(ctx context.Context, id int64) (View, error)
	List(ctx context.Context, limit, offset int) ([]Resume, error)
	ListByProposal(ctx context.Context, proposalID int64, limit, offset int) ([]Resume, error)
	Update(ctx context.Context, id int64, upd Update) (View, error)
	Delete(ctx context.Context, id int64) error

	// Regenerate re-renders against current entity state and stores the result.
	Regenerate(ctx context.Context, id int64, overrides map[string]any) (Resume, error)
	Variables(ctx context.Context, id int64) (map[string]any, error)
	// Preview renders source against the resume's variables without storing anything.
	Preview(ctx context.Context, id int64, source string) (string, error)
	Reorder(ctx context.Context, id int64, items []OrderItem) (View, error)

	ToggleAI(ctx context.Context, id, experienceID int64, use bool) (DetailView, error)
	SetOverride(ctx context.Context, id, experienceID int64, text string) (DetailView, error)
	Rewrite(ctx context.Context, id, experienceID int64, opts RewriteOptions) (RewriteOutcome, error)
	BulkRewrite(ctx context.Context, id int64) (BulkOutcome, error)

	// ExportPDF prints the stored content; it never re-renders.
	ExportPDF(ctx context.Context, id int64) (filename string, data []byte, err error)
}

type ExperienceSource interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]experience.Experience, error)
}

type ProposalSource interface {
	Get(ctx context.Context, id int64) (proposal.Proposal, error)
}

type ProfileSource interface {
	Get(ctx context.Context, id int64) (profile.Profile, error)
}

type TemplateSource interface {
	Get(ctx context.Context, id int64) (template.Template, error)
	Default(ctx context.Context) (template.Template, error)
}

type Renderer interface {
	Render(source string, vars map[string]any) (string, error)
}

type Rewriter interface {
	Configured() bool
	Rewrite(ctx context.Context, req rewrite.Request) rewrite.Result
}

type Exporter interface {
	Export(ctx context.Context, html string) ([]byte, error)
}

type Deps struct {
	Resumes     Repository
	Experiences ExperienceSource
	Proposals   ProposalSource
	Profiles    ProfileSource
	Templates   TemplateSource
	Resolver    *variables.Resolver
	Renderer    Renderer
	Rewriter    Rewriter
	Exporter    Exporter
	Log         *zap.Logger
}

type service struct {
	Deps
	log *zap.Logger
}

func NewService(d Deps) UseCase {
	return &service{Deps: d, log: logger.OrNop(d.Log).Named("resume")}
}

func (s *service) Create(ctx context.Context, in CreateInput) (View, error) {
	if err := validateIDs(in.ExperienceIDs); err != nil {
		return View{}, err
	}
	r := Resume{
		Alias:      strings.TrimSpace(in.Alias),
		Status:     StatusDraft,
		ProposalID: positive(in.ProposalID),
		ProfileID:  positive(in.ProfileID),
	}

	tpl, err := s.pickTemplate(ctx, in.TemplateID)
	if err != nil {
		return View{}, err
	}
	r.TemplateID = tpl.ID

	details := MergeExperienceSet(0, nil, in.ExperienceIDs)
	html, exps, err := s.render(ctx, r, tpl, details, nil)
	if err != nil {
		return View{}, err
	}
	r.GeneratedContent = &html

	if err := s.Resumes.Create(ctx, &r, details); err != nil {
		return View{}, err
	}
	s.log.Info("resume created",
		zap.Int64("resume_id", r.ID),
		zap.Int64("template_id", r.TemplateID),
		zap.Int("experiences", len(details)),
	)
	for i := range details {
		details[i].ResumeID = r.ID
	}
	return view(r, details, exps), nil
}

func (s *service) Get(ctx context.Context, id int64) (View, error) {
	r, details, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	exps, err := s.experiences(ctx, details)
	if err != nil {
		return View{}, err
	}
	return view(r, details, exps), nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	return s.Resumes.List(ctx, limit, offset)
}

func (s *service) ListByProposal(ctx context.Context, proposalID int64, limit, offset int) ([]Resume, error) {
	if _, err := s.Proposals.Get(ctx, proposalID); err != nil {
		return nil, err
	}
	return s.Resumes.ListByProposal(ctx, proposalID, limit, offset)
}

func (s *service) Update(ctx context.Context, id int64, upd Update) (View, error) {
	r, existing, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	if upd.Alias != nil {
		r.Alias = strings.TrimSpace(*upd.Alias)
	}
	if upd.Status != nil {
		st := strings.TrimSpace(*upd.Status)
		if st == "" {
			return View{}, apperrors.Validation("status must not be empty")
		}
		r.Status = st
	}
	if upd.TemplateID != nil {
		tpl, err := s.Templates.Get(ctx, *upd.TemplateID)
		if err != nil {
			return View{}, err
		}
		r.TemplateID = tpl.ID
	}
	if upd.ProposalID != nil {
		r.ProposalID = positive(upd.ProposalID)
		if r.ProposalID != nil {
			if _, err := s.Proposals.Get(ctx, *r.ProposalID); err != nil {
				return View{}, err
			}
		}
	}
	if upd.ProfileID != nil {
		r.ProfileID = positive(upd.ProfileID)
		if r.ProfileID != nil {
			if _, err := s.Profiles.Get(ctx, *r.ProfileID); err != nil {
				return View{}, err
			}
		}
	}

	var details []ExperienceDetail
	if upd.ExperienceIDs != nil {
		if err := validateIDs(*upd.ExperienceIDs); err != nil {
			return View{}, err
		}
		details = MergeExperienceSet(r.ID, existing, *upd.ExperienceIDs)
		if _, err := s.experiences(ctx, details); err != nil {
			return View{}, err
		}
	}
	if err := s.Resumes.Update(ctx, r, details); err != nil {
		return View{}, err
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.Resumes.Delete(ctx, id)
}

func (s *service) Regenerate(ctx context.Context, id int64, overrides map[string]any) (Resume, error) {
	if err := variables.ValidateOverrides(overrides); err != nil {
		return Resume{}, err
	}
	r, details, err := s.load(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	tpl, err := s.Templates.Get(ctx, r.TemplateID)
	if err != nil {
		return Resume{}, err
	}
	html, _, err := s.render(ctx, r, tpl, details, overrides)
	if err != nil {
		return Resume{}, err
	}
	if err := s.Resumes.SaveContent(ctx, id, html); err != nil {
		return Resume{}, err
	}
	r.GeneratedContent = &html
	s.log.Debug("resume regenerated", zap.Int64("resume_id", id), zap.Int("bytes", len(html)))
	return r, nil
}

func (s *service) Variables(ctx context.Context, id int64) (map[string]any, error) {
	r, details, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	in, _, err := s.input(ctx, r, details)
	if err != nil {
		return nil, err
	}
	return s.Resolver.Resolve(ctx, in), nil
}

func (s *service) Preview(ctx context.Context, id int64, source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", apperrors.Validation("content is required")
	}
	vars, err := s.Variables(ctx, id)
	if err != nil {
		return "", err
	}
	html, err := s.Renderer.Render(source, vars)
	if err != nil {
		return "", apperrors.Validation("%v", err)
	}
	return html, nil
}

func (s *service) Reorder(ctx context.Context, id int64, items []OrderItem) (View, error) {
	if len(items) == 0 {
		return View{}, apperrors.Validation("experience order is required")
	}
	if _, err := s.Resumes.Get(ctx, id); err != nil {
		return View{}, err
	}
	if err := s.Resumes.Reorder(ctx, id, items); err != nil {
		return View{}, err
	}
	return s.Get(ctx, id)
}

func (s *service) ToggleAI(ctx context.Context, id, experienceID int64, use bool) (DetailView, error) {
	return s.mutateDetail(ctx, id, experienceID, func(d *ExperienceDetail) {
		d.UseAIVersion = use
	})
}

func (s *service) SetOverride(ctx context.Context, id, experienceID int64, text string) (DetailView, error) {
	return s.mutateDetail(ctx, id, experienceID, func(d *ExperienceDetail) {
		d.OverriddenDescription = text
	})
}

func (s *service) ExportPDF(ctx context.Context, id int64) (string, []byte, error) {
	r, err := s.Resumes.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if r.GeneratedContent == nil || strings.TrimSpace(*r.GeneratedContent) == "" {
		return "", nil, apperrors.Validation("resume %d has no generated content", id)
	}
	data, err := s.Exporter.Export(ctx, *r.GeneratedContent)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("resume_%d.pdf", id), data, nil
}

func (s *service) mutateDetail(ctx context.Context, id, experienceID int64, fn func(*ExperienceDetail)) (DetailView, error) {
	if _, err := s.Resumes.Get(ctx, id); err != nil {
		return DetailView{}, err
	}
	d, err := s.detail(ctx, id, experienceID)
	if err != nil {
		return DetailView{}, err
	}
	fn(&d)
	if err := s.Resumes.UpdateDetail(ctx, d); err != nil {
		return DetailView{}, err
	}
	exps, err := s.experiences(ctx, []ExperienceDetail{d})
	if err != nil {
		return DetailView{}, err
	}
	return newDetailView(d, exps[experienceID]), nil
}

// detail returns the row linking experienceID to resume id. An experience
// outside the resume is a validation error, not a missing entity.
func (s *service) detail(ctx context.Context, id, experienceID int64) (ExperienceDetail, error) {
	d, err := s.Resumes.GetDetail(ctx, id, experienceID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return ExperienceDetail{}, apperrors.Validation("experience %d is not part of resume %d", experienceID, id)
	}
	return d, err
}

func (s *service) load(ctx context.Context, id int64) (Resume, []ExperienceDetail, error) {
	r, err := s.Resumes.Get(ctx, id)
	if err != nil {
		return Resume{}, nil, err
	}
	details, err := s.Resumes.Details(ctx, id)
	if err != nil {
		return Resume{}, nil, err
	}
	return r, details, nil
}

func (s *service) pickTemplate(ctx context.Context, id *int64) (template.Template, error) {
	if id != nil && *id > 0 {
		return s.Templates.Get(ctx, *id)
	}
	return s.Templates.Default(ctx)
}

// experiences loads the experiences referenced by details. Any missing id is NotFound.
func (s *service) experiences(ctx context.Context, details []ExperienceDetail) (map[int64]experience.Experience, error) {
	if len(details) == 0 {
		return map[int64]experience.Experience{}, nil
	}
	ids := make([]int64, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ExperienceID)
	}
	found, err := s.Experiences.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, apperrors.NotFound("experience", id)
		}
	}
	return found, nil
}

// input loads everything r references and applies the resume specific descriptions.
func (s *service) input(ctx context.Context, r Resume, details []ExperienceDetail) (variables.Input, map[int64]experience.Experience, error) {
	exps, err := s.experiences(ctx, details)
	if err != nil {
		return variables.Input{}, nil, err
	}
	ordered := make([]ExperienceDetail, len(details))
	copy(ordered, details)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].DisplayOrder < ordered[j].DisplayOrder })

	in := variables.Input{
		Experiences: make([]experience.Experience, 0, len(ordered)),
		ResumeAlias: r.Alias,
	}
	for _, d := range ordered {
		e := exps[d.ExperienceID]
		e.ProjectDescription = EffectiveDescription(d, e.ProjectDescription)
		in.Experiences = append(in.Experiences, e)
	}
	if r.ID > 0 {
		id := r.ID
		in.ResumeID = &id
	}
	if r.ProposalID != nil {
		p, err := s.Proposals.Get(ctx, *r.ProposalID)
		if err != nil {
			return variables.Input{}, nil, err
		}
		in.Proposal = &p
	}
	if r.ProfileID != nil {
		p, err := s.Profiles.Get(ctx, *r.ProfileID)
		if err != nil {
			return variables.Input{}, nil, err
		}
		in.Profile = &p
	}
	return in, exps, nil
}

func (s *service) render(ctx context.Context, r Resume, tpl template.Template, details []ExperienceDetail, overrides map[string]any) (string, map[int64]experience.Experience, error) {
	in, exps, err := s.input(ctx, r, details)
	if err != nil {
		return "", nil, err
	}
	in.Overrides = overrides
	html, err := s.Renderer.Render(tpl.Content, s.Resolver.Resolve(ctx, in))
	if err != nil {
		return "", nil, fmt.Errorf("render resume with template %d: %w", tpl.ID, err)
	}
	return html, exps, nil
}

func view(r Resume, details []ExperienceDetail, exps map[int64]experience.Experience) View {
	v := View{Resume: r, Experiences: make([]DetailView, 0, len(details))}
	for _, d := range details {
		v.Experiences = append(v.Experiences, newDetailView(d, exps[d.ExperienceID]))
	}
	sort.SliceStable(v.Experiences, func(i, j int) bool {
		return v.Experiences[i].DisplayOrder < v.Experiences[j].DisplayOrder
	})
	return v
}

func validateIDs(ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return apperrors.Validation("invalid experience id %d", id)
		}
		if _, dup := seen[id]; dup {
			return apperrors.Validation("experience %d listed twice", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func positive(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	v := *id
	return &v
}
