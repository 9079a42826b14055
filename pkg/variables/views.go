package variables

import (
	"github.com/artem13815/docmaker/pkg/client"
	"github.com/artem13815/docmaker/pkg/experience"
	"github.com/artem13815/docmaker/pkg/profile"
	"github.com/artem13815/docmaker/pkg/proposal"
)

// Variables is the typed form of the template mapping.
type Variables struct {
	Profile     *ProfileView
	Experiences []ExperienceView
	Proposal    *ProposalView
	Resume      ResumeView
	CurrentDate string
	CurrentYear int
}

type ProfileView struct {
	profile.Profile
	MainImageURL       *string
	DisplayName        string
	HasContactInfo     bool
	SkillGroups        []SkillGroup
	SkillCount         int
	CertificationCount int
	EducationCount     int
}

type SkillGroup struct {
	Category string
	Skills   []profile.Skill
}

type ExperienceView struct {
	experience.Experience
	DateStartedFormatted   *string
	DateCompletedFormatted string
	DateRange              *string
	Tags                   []string
	Client                 *ClientView
	HasValue               bool
	HasDates               bool
	IsCurrent              bool
	DurationMonths         *int
}

type ClientView struct {
	client.Client
}

type ProposalView struct {
	proposal.Proposal
	Client *ClientView
}

type ResumeView struct {
	ID                  *int64
	Alias               string
	GenerationDate      string
	GenerationTimestamp string
}

// Map converts v into the mapping handed to the template engine.
func (v Variables) Map() map[string]any {
	exps := make([]any, 0, len(v.Experiences))
	for _, e := range v.Experiences {
		exps = append(exps, e.Map())
	}
	out := map[string]any{
		"profile":      nil,
		"experiences":  exps,
		"proposal":     nil,
		"resume":       v.Resume.Map(),
		"current_date": v.CurrentDate,
		"current_year": v.CurrentYear,
	}
	if v.Profile != nil {
		out["profile"] = v.Profile.Map()
	}
	if v.Proposal != nil {
		out["proposal"] = v.Proposal.Map()
	}
	return out
}

func (p ProfileView) Map() map[string]any {
	skills := make([]any, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, skillMap(s))
	}
	certs := make([]any, 0, len(p.Certifications))
	for _, c := range p.Certifications {
		certs = append(certs, map[string]any{
			"name":          c.Name,
			"issuer":        c.Issuer,
			"acquired_date": c.AcquiredDate,
			"valid_until":   c.ValidUntil,
			"credential_id": c.CredentialID,
		})
	}
	edu := make([]any, 0, len(p.Education))
	for _, e := range p.Education {
		edu = append(edu, map[string]any{
			"institution":     e.Institution,
			"degree":          e.Degree,
			"field":           e.Field,
			"graduation_year": optInt(e.GraduationYear),
			"gpa":             optFloat(e.GPA),
			"honors":          e.Honors,
		})
	}
	byCategory := map[string]any{}
	groups := make([]any, 0, len(p.SkillGroups))
	for _, g := range p.SkillGroups {
		items := make([]any, 0, len(g.Skills))
		for _, s := range g.Skills {
			items = append(items, skillMap(s))
		}
		byCategory[g.Category] = items
		groups = append(groups, map[string]any{"category": g.Category, "skills": items})
	}
	return map[string]any{
		"id":                  p.ID,
		"full_name":           p.FullName,
		"first_name":          p.FirstName,
		"last_name":           p.LastName,
		"current_title":       p.CurrentTitle,
		"professional_intro":  p.ProfessionalIntro,
		"department":          p.Department,
		"employee_type":       p.EmployeeType,
		"is_current_employee": p.IsCurrentEmployee,
		"email":               p.Email,
		"mobile":              p.Mobile,
		"address":             p.Address,
		"about_url":           p.AboutURL,
		"main_image_url":      optString(p.MainImageURL),
		"skills":              skills,
		"certifications":      certs,
		"education":           edu,
		"display_name":        p.DisplayName,
		"has_contact_info":    p.HasContactInfo,
		"skills_by_category":  byCategory,
		"skill_groups":        groups,
		"skill_count":         p.SkillCount,
		"certification_count": p.CertificationCount,
		"education_count":     p.EducationCount,
	}
}

func (e ExperienceView) Map() map[string]any {
	m := map[string]any{
		"id":                       e.ID,
		"project_name":             e.ProjectName,
		"project_description":      e.ProjectDescription,
		"location":                 e.Location,
		"project_value":            optFloat(e.ProjectValue),
		"date_started":             nil,
		"date_completed":           nil,
		"date_started_formatted":   optString(e.DateStartedFormatted),
		"date_completed_formatted": e.DateCompletedFormatted,
		"date_range":               optString(e.DateRange),
		"tags":                     e.Tags,
		"tags_string":              e.Experience.Tags,
		"client":                   nil,
		"client_name":              nil,
		"has_client":               e.Client != nil,
		"has_value":                e.HasValue,
		"has_dates":                e.HasDates,
		"is_current":               e.IsCurrent,
		"duration_months":          optInt(e.DurationMonths),
	}
	if e.DateStarted != nil {
		m["date_started"] = *e.DateStarted
	}
	if e.DateCompleted != nil {
		m["date_completed"] = *e.DateCompleted
	}
	if e.Client != nil {
		m["client"] = e.Client.Map()
		m["client_name"] = e.Client.ClientName
	}
	return m
}

func (c ClientView) Map() map[string]any {
	return map[string]any{
		"id":           c.ID,
		"client_name":  c.ClientName,
		"website":      c.Website,
		"main_email":   c.MainEmail,
		"main_phone":   c.MainPhone,
		"main_contact": mainContact(c.Client),
	}
}

func (p ProposalView) Map() map[string]any {
	m := map[string]any{
		"id":            p.ID,
		"name":          p.Name,
		"context":       p.Context,
		"project_brief": p.ProjectBrief,
		"scope":         p.Scope,
		"location":      p.Location,
		"status":        p.Status,
		"client":        nil,
		"client_name":   nil,
		"has_client":    p.Client != nil,
		"has_context":   p.Context != "",
	}
	if p.Client != nil {
		m["client"] = map[string]any{
			"id":           p.Client.ID,
			"client_name":  p.Client.ClientName,
			"main_contact": mainContact(p.Client.Client),
		}
		m["client_name"] = p.Client.ClientName
	}
	return m
}

func (r ResumeView) Map() map[string]any {
	var id any
	if r.ID != nil {
		id = *r.ID
	}
	return map[string]any{
		"id":                   id,
		"alias":                r.Alias,
		"generation_date":      r.GenerationDate,
		"generation_timestamp": r.GenerationTimestamp,
	}
}

func skillMap(s profile.Skill) map[string]any {
	return map[string]any{
		"name":     s.Name,
		"level":    s.Level,
		"years":    optInt(s.Years),
		"category": s.Category,
	}
}

func mainContact(c client.Client) any {
	if c.MainContactName == "" {
		return nil
	}
	return c.MainContactName
}

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func optFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
