// Package variables turns stored entities into the mapping templates are rendered with.
//
// All display logic (date formatting, grouping, counters, flags) lives here so
// templates stay logic-free. Views are typed; they become generic maps only at
// the template engine boundary (Variables.Map).
package variables

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/artem13815/docmaker/pkg/apperrors"
	"github.com/artem13815/docmaker/pkg/client"
	"github.com/artem13815/docmaker/pkg/experience"
	"github.com/artem13815/docmaker/pkg/media"
	"github.com/artem13815/docmaker/pkg/profile"
	"github.com/artem13815/docmaker/pkg/proposal"
)

const (
	monthYearLayout = "January 2006"
	longDateLayout  = "January 02, 2006"
	presentLabel    = "Present"
	otherCategory   = "Other"
)

// templateKey is what the template engine accepts as a top-level context key.
var templateKey = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ClientLookup is the only I/O the resolver performs.
type ClientLookup interface {
	Get(ctx context.Context, id int64) (client.Client, error)
}

// Input is everything one document render needs.
type Input struct {
	Profile *profile.Profile
	// Experiences in presentation order. ProjectDescription must already hold
	// the effective description for the resume being rendered.
	Experiences []experience.Experience
	Proposal    *proposal.Proposal
	ResumeID    *int64
	ResumeAlias string
	// Overrides are deep-merged into the result last.
	Overrides map[string]any
}

type Resolver struct {
	clients ClientLookup
	media   media.URLBuilder
	now     func() time.Time
}

type Option func(*Resolver)

// WithClock fixes the time source used for generation timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

func NewResolver(clients ClientLookup, urls media.URLBuilder, opts ...Option) *Resolver {
	r := &Resolver{clients: clients, media: urls, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds the template mapping for in, overrides applied.
func (r *Resolver) Resolve(ctx context.Context, in Input) map[string]any {
	vars := r.Build(ctx, in).Map()
	if len(in.Overrides) > 0 {
		deepMerge(vars, in.Overrides)
	}
	return vars
}

// ValidateOverrides rejects top-level override keys the template engine
// cannot bind. Nested keys are free-form.
func ValidateOverrides(overrides map[string]any) error {
	for k := range overrides {
		if !templateKey.MatchString(k) {
			return apperrors.Validation("override key %q must contain only letters, digits and _", k)
		}
	}
	return nil
}

// Build returns the typed variables without overrides.
func (r *Resolver) Build(ctx context.Context, in Input) Variables {
	now := r.now()
	v := Variables{
		Experiences: make([]ExperienceView, 0, len(in.Experiences)),
		Resume: ResumeView{
			ID:                  in.ResumeID,
			Alias:               in.ResumeAlias,
			GenerationDate:      now.Format(longDateLayout),
			GenerationTimestamp: now.Format(time.RFC3339),
		},
		CurrentDate: now.Format(longDateLayout),
		CurrentYear: now.Year(),
	}
	if in.Profile != nil {
		pv := r.profileView(*in.Profile)
		v.Profile = &pv
	}
	for _, e := range in.Experiences {
		v.Experiences = append(v.Experiences, r.experienceView(ctx, e, now))
	}
	if in.Proposal != nil {
		pv := r.proposalView(ctx, *in.Proposal)
		v.Proposal = &pv
	}
	return v
}

func (r *Resolver) profileView(p profile.Profile) ProfileView {
	p.Normalize()
	groups := GroupSkills(p.Skills)
	return ProfileView{
		Profile:            p,
		MainImageURL:       r.media.URL(p.MainImageID),
		DisplayName:        p.DisplayName(),
		HasContactInfo:     p.HasContactInfo(),
		SkillGroups:        groups,
		SkillCount:         len(p.Skills),
		CertificationCount: len(p.Certifications),
		EducationCount:     len(p.Education),
	}
}

func (r *Resolver) experienceView(ctx context.Context, e experience.Experience, now time.Time) ExperienceView {
	v := ExperienceView{
		Experience:             e,
		DateCompletedFormatted: presentLabel,
		Tags:                   SplitTags(e.Tags),
		HasValue:               e.ProjectValue != nil && *e.ProjectValue != 0,
		HasDates:               e.DateStarted != nil || e.DateCompleted != nil,
		IsCurrent:              e.DateCompleted == nil,
		DurationMonths:         DurationMonths(e.DateStarted, e.DateCompleted, now),
	}
	if e.DateStarted != nil {
		s := e.DateStarted.Format(monthYearLayout)
		v.DateStartedFormatted = &s
	}
	if e.DateCompleted != nil {
		v.DateCompletedFormatted = e.DateCompleted.Format(monthYearLayout)
	}
	if v.DateStartedFormatted != nil {
		dr := *v.DateStartedFormatted + " - " + v.DateCompletedFormatted
		v.DateRange = &dr
	}
	if e.ClientID > 0 {
		v.Client = r.lookupClient(ctx, e.ClientID)
	}
	return v
}

func (r *Resolver) proposalView(ctx context.Context, p proposal.Proposal) ProposalView {
	v := ProposalView{Proposal: p}
	if p.ClientID != nil {
		v.Client = r.lookupClient(ctx, *p.ClientID)
	}
	return v
}

// lookupClient degrades to nil on any failure: a missing client is not an error.
func (r *Resolver) lookupClient(ctx context.Context, id int64) *ClientView {
	if r.clients == nil {
		return nil
	}
	c, err := r.clients.Get(ctx, id)
	if err != nil {
		return nil
	}
	return &ClientView{Client: c}
}

// SplitTags splits a comma separated tag string, trimming and dropping empties.
func SplitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// DurationMonths counts whole calendar months from start to end (now when end is nil).
// Nil without a start date, at least 1 otherwise.
func DurationMonths(start, end *time.Time, now time.Time) *int {
	if start == nil {
		return nil
	}
	to := now
	if end != nil {
		to = *end
	}
	months := (to.Year()-start.Year())*12 + int(to.Month()) - int(start.Month())
	if months < 1 {
		months = 1
	}
	return &months
}

// GroupSkills groups skills by category keeping first-seen category order and
// input order inside each group. Skills without a category go to "Other".
func GroupSkills(skills []profile.Skill) []SkillGroup {
	groups := []SkillGroup{}
	index := map[string]int{}
	for _, s := range skills {
		cat := strings.TrimSpace(s.Category)
		if cat == "" {
			cat = otherCategory
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, SkillGroup{Category: cat})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}

func deepMerge(base, override map[string]any) {
	for k, v := range override {
		if bm, ok := base[k].(map[string]any); ok {
			if om, ok := v.(map[string]any); ok {
				deepMerge(bm, om)
				continue
			}
		}
		base[k] = v
	}
}
