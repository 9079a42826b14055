package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

type memRepo struct {
	rows   map[int64]Profile
	nextID int64
	writes int
}

func newMemRepo() *memRepo { return &memRepo{rows: map[int64]Profile{}} }

func (m *memRepo) Create(_ context.Context, p *Profile) error {
	m.nextID++
	m.writes++
	p.ID = m.nextID
	m.rows[p.ID] = *p
	return nil
}

func (m *memRepo) Get(_ context.Context, id int64) (Profile, error) {
	p, ok := m.rows[id]
	if !ok {
		return Profile{}, apperrors.NotFound("profile", id)
	}
	return p, nil
}

func (m *memRepo) List(context.Context, string, int, int) ([]Profile, error) { return nil, nil }

func (m *memRepo) Update(_ context.Context, p Profile) error {
	m.writes++
	m.rows[p.ID] = p
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func intPtr(v int) *int { return &v }

func TestValidateEmployeeType(t *testing.T) {
	for _, et := range append([]string{""}, EmployeeTypes...) {
		p := Profile{EmployeeType: et}
		p.Normalize()
		assert.NoError(t, p.Validate(), et)
	}

	p := Profile{EmployeeType: "intern"}
	p.Normalize()
	err := p.Validate()
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "employee_type")
}

func TestValidateCollections(t *testing.T) {
	gpa := 7.5
	cases := []struct {
		name  string
		p     Profile
		valid bool
	}{
		{"empty", Profile{}, true},
		{"full", Profile{
			Skills:         []Skill{{Name: "Go", Level: "expert", Years: intPtr(6), Category: "Languages"}},
			Certifications: []Certification{{Name: "PMP", Issuer: "PMI"}},
			Education:      []Education{{Institution: "MIT", GraduationYear: intPtr(2010)}},
		}, true},
		{"skill without name", Profile{Skills: []Skill{{Level: "expert"}}}, false},
		{"negative years", Profile{Skills: []Skill{{Name: "Go", Years: intPtr(-1)}}}, false},
		{"certification without name", Profile{Certifications: []Certification{{Issuer: "PMI"}}}, false},
		{"gpa out of range", Profile{Education: []Education{{Institution: "MIT", GPA: &gpa}}}, false},
		{"graduation year out of range", Profile{Education: []Education{{Institution: "MIT", GraduationYear: intPtr(1200)}}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.p.Normalize()
			err := tc.p.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestUpdateApplyKeepsCollectionsNonNil(t *testing.T) {
	p := Profile{Skills: []Skill{{Name: "Go"}}}
	var none []Skill
	Update{Skills: &none}.Apply(&p)

	assert.NotNil(t, p.Skills)
	assert.Empty(t, p.Skills)
	assert.NotNil(t, p.Certifications)
	assert.NotNil(t, p.Education)
}

func TestUpdateApplyDetachesImage(t *testing.T) {
	img := int64(9)
	p := Profile{MainImageID: &img}
	zero := int64(0)
	Update{MainImageID: &zero}.Apply(&p)
	assert.Nil(t, p.MainImageID)

	title := "  Lead Engineer "
	Update{CurrentTitle: &title}.Apply(&p)
	assert.Equal(t, "Lead Engineer", p.CurrentTitle)
}

func TestServiceCreateNormalizes(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), Profile{FirstName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.NotNil(t, repo.rows[1].Skills)
	assert.NotNil(t, repo.rows[1].Certifications)
	assert.NotNil(t, repo.rows[1].Education)
}

func TestServiceRejectsInvalidProfile(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, Profile{Skills: []Skill{{}}})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Zero(t, repo.writes)

	p, err := svc.Create(ctx, Profile{FirstName: "Ada"})
	require.NoError(t, err)
	bad := "intern"
	_, err = svc.Update(ctx, p.ID, Update{EmployeeType: &bad})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 1, repo.writes)
	assert.Empty(t, repo.rows[p.ID].EmployeeType)

	_, err = svc.Update(ctx, 404, Update{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
