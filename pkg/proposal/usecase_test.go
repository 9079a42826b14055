package proposal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

type memRepo struct {
	rows   map[int64]Proposal
	nextID int64
}

func newMemRepo() *memRepo { return &memRepo{rows: map[int64]Proposal{}} }

func (m *memRepo) Create(_ context.Context, p *Proposal) error {
	m.nextID++
	p.ID = m.nextID
	m.rows[p.ID] = *p
	return nil
}

func (m *memRepo) Get(_ context.Context, id int64) (Proposal, error) {
	p, ok := m.rows[id]
	if !ok {
		return Proposal{}, apperrors.NotFound("proposal", id)
	}
	return p, nil
}

func (m *memRepo) List(context.Context, int, int) ([]Proposal, error) { return nil, nil }

func (m *memRepo) Update(_ context.Context, p Proposal) error {
	m.rows[p.ID] = p
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func TestCreateDefaultsStatus(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), Proposal{Context: "no name"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, repo.rows)

	p, err := svc.Create(context.Background(), Proposal{Name: "Port Bid"})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, p.Status)

	p, err = svc.Create(context.Background(), Proposal{Name: "Rail Bid", Status: "submitted"})
	require.NoError(t, err)
	assert.Equal(t, "submitted", p.Status)
}

func TestUpdate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	client := int64(7)
	p, err := svc.Create(ctx, Proposal{Name: "Port Bid", ClientID: &client, Status: "submitted"})
	require.NoError(t, err)

	blank := " "
	_, err = svc.Update(ctx, p.ID, Update{Name: &blank})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "Port Bid", repo.rows[p.ID].Name)

	zero := int64(0)
	got, err := svc.Update(ctx, p.ID, Update{Status: &blank, ClientID: &zero})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, got.Status)
	assert.Nil(t, got.ClientID)
}

func TestAlignmentContext(t *testing.T) {
	assert.Equal(t, "Maritime", Proposal{Name: "Port Bid", Context: " Maritime "}.AlignmentContext())
	assert.Equal(t, "Port Bid", Proposal{Name: "Port Bid", Context: "  "}.AlignmentContext())
}
