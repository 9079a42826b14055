package project

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

type memRepo struct {
	rows   map[int64]Project
	nextID int64
}

func newMemRepo() *memRepo { return &memRepo{rows: map[int64]Project{}} }

func (m *memRepo) Create(_ context.Context, p *Project) error {
	m.nextID++
	p.ID = m.nextID
	m.rows[p.ID] = *p
	return nil
}

func (m *memRepo) Get(_ context.Context, id int64) (Project, error) {
	p, ok := m.rows[id]
	if !ok {
		return Project{}, apperrors.NotFound("project", id)
	}
	return p, nil
}

func (m *memRepo) List(context.Context, int, int) ([]Project, error) { return nil, nil }

func (m *memRepo) Update(_ context.Context, p Project) error {
	m.rows[p.ID] = p
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func TestValidate(t *testing.T) {
	neg, pos := -1.0, 1500000.0
	assert.NoError(t, Project{Name: "Pier 4", ContractValue: &pos}.Validate())
	assert.ErrorIs(t, Project{Name: ""}.Validate(), apperrors.ErrValidation)
	err := Project{Name: "Pier 4", ContractValue: &neg}.Validate()
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "contract_value")
}

func TestServiceUpdate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	img := int64(5)
	p, err := svc.Create(ctx, Project{Name: "Pier 4", MainImageID: &img})
	require.NoError(t, err)

	neg := -10.0
	_, err = svc.Update(ctx, p.ID, Update{ContractValue: &neg})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, repo.rows[p.ID].ContractValue)

	name := " Pier 4 North "
	zero := int64(0)
	got, err := svc.Update(ctx, p.ID, Update{Name: &name, MainImageID: &zero})
	require.NoError(t, err)
	assert.Equal(t, "Pier 4 North", got.Name)
	assert.Nil(t, got.MainImageID)

	_, err = svc.Update(ctx, 404, Update{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
