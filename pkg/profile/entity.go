package profile

import (
	"context"
	"strings"
	"time"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

var EmployeeTypes = []string{"contract", "full-time", "consultant"}

// Profile is the person a resume is generated for.
// Skills, Certifications and Education are never nil once normalized.
type Profile struct {
	ID                int64           `json:"id"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	FullName          string          `json:"full_name"`
	CurrentTitle      string          `json:"current_title"`
	ProfessionalIntro string          `json:"professional_intro"`
	Department        string          `json:"department"`
	EmployeeType      string          `json:"employee_type"`
	IsCurrentEmployee bool            `json:"is_current_employee"`
	Email             string          `json:"email"`
	Mobile            string          `json:"mobile"`
	Address           string          `json:"address"`
	AboutURL          string          `json:"about_url"`
	MainImageID       *int64          `json:"main_image_id"`
	Skills            []Skill         `json:"skills"`
	Certifications    []Certification `json:"certifications"`
	Education         []Education     `json:"education"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type Skill struct {
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"`
	Years    *int   `json:"years,omitempty"`
	Category string `json:"category,omitempty"`
}

type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer,omitempty"`
	AcquiredDate string `json:"acquired_date,omitempty"`
	ValidUntil   string `json:"valid_until,omitempty"`
	CredentialID string `json:"credential_id,omitempty"`
}

type Education struct {
	Institution    string   `json:"institution"`
	Degree         string   `json:"degree,omitempty"`
	Field          string   `json:"field,omitempty"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	GPA            *float64 `json:"gpa,omitempty"`
	Honors         string   `json:"honors,omitempty"`
}

// Normalize replaces absent collections with empty ones.
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = []Skill{}
	}
	if p.Certifications == nil {
		p.Certifications = []Certification{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
}

// DisplayName is the full name, else "first last" trimmed.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Profile) HasContactInfo() bool {
	return p.Email != "" || p.Mobile != "" || p.Address != ""
}

func (p Profile) Validate() error {
	if p.EmployeeType != "" {
		ok := false
		for _, t := range EmployeeTypes {
			if p.EmployeeType == t {
				ok = true
				break
			}
		}
		if !ok {
			return apperrors.Validation("employee_type must be one of %s", strings.Join(EmployeeTypes, ", "))
		}
	}
	return validateCollections(p)
}

type Update struct {
	FirstName         *string
	LastName          *string
	FullName          *string
	CurrentTitle      *string
	ProfessionalIntro *string
	Department        *string
	EmployeeType      *string
	IsCurrentEmployee *bool
	Email             *string
	Mobile            *string
	Address           *string
	AboutURL          *string
	MainImageID       *int64 // 0 detaches
	Skills            *[]Skill
	Certifications    *[]Certification
	Education         *[]Education
}

func (u Update) Apply(p *Profile) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setString(&p.FirstName, u.FirstName)
	setString(&p.LastName, u.LastName)
	setString(&p.FullName, u.FullName)
	setString(&p.CurrentTitle, u.CurrentTitle)
	setString(&p.Department, u.Department)
	setString(&p.EmployeeType, u.EmployeeType)
	setString(&p.Email, u.Email)
	setString(&p.Mobile, u.Mobile)
	setString(&p.Address, u.Address)
	setString(&p.AboutURL, u.AboutURL)
	if u.ProfessionalIntro != nil {
		p.ProfessionalIntro = *u.ProfessionalIntro
	}
	if u.IsCurrentEmployee != nil {
		p.IsCurrentEmployee = *u.IsCurrentEmployee
	}
	if u.MainImageID != nil {
		if *u.MainImageID <= 0 {
			p.MainImageID = nil
		} else {
			id := *u.MainImageID
			p.MainImageID = &id
		}
	}
	if u.Skills != nil {
		p.Skills = *u.Skills
	}
	if u.Certifications != nil {
		p.Certifications = *u.Certifications
	}
	if u.Education != nil {
		p.Education = *u.Education
	}
	p.Normalize()
}

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id int64) (Profile, error)
	// List filters by name or title when q is not empty.
	List(ctx context.Context, q string, limit, offset int) ([]Profile, error)
	Update(ctx context.Context, p Profile) error
	Delete(ctx context.Context, id int64) error
}
