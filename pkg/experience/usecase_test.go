package experience

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

type memRepo struct {
	rows   map[int64]Experience
	nextID int64
	writes int
}

func newMemRepo() *memRepo { return &memRepo{rows: map[int64]Experience{}} }

func (m *memRepo) Create(_ context.Context, e *Experience) error {
	m.nextID++
	m.writes++
	e.ID = m.nextID
	m.rows[e.ID] = *e
	return nil
}

func (m *memRepo) Get(_ context.Context, id int64) (Experience, error) {
	e, ok := m.rows[id]
	if !ok {
		return Experience{}, apperrors.NotFound("experience", id)
	}
	return e, nil
}

func (m *memRepo) GetMany(_ context.Context, ids []int64) (map[int64]Experience, error) {
	out := map[int64]Experience{}
	for _, id := range ids {
		if e, ok := m.rows[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (m *memRepo) List(context.Context, *int64, int, int) ([]Experience, error) { return nil, nil }

func (m *memRepo) Update(_ context.Context, e Experience) error {
	m.writes++
	m.rows[e.ID] = e
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		e    Experience
		err  string
	}{
		{"ok", Experience{ProjectName: "Harbor", ClientID: 1, DateStarted: day(2020, 1, 1), DateCompleted: day(2021, 1, 1)}, ""},
		{"same day", Experience{ProjectName: "Harbor", ClientID: 1, DateStarted: day(2020, 1, 1), DateCompleted: day(2020, 1, 1)}, ""},
		{"ongoing", Experience{ProjectName: "Harbor", ClientID: 1, DateStarted: day(2020, 1, 1)}, ""},
		{"no name", Experience{ProjectName: "  ", ClientID: 1}, "project_name"},
		{"no client", Experience{ProjectName: "Harbor"}, "client_id"},
		{"completed before started", Experience{ProjectName: "Harbor", ClientID: 1, DateStarted: day(2021, 1, 1), DateCompleted: day(2020, 6, 1)}, "date_completed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.e.Validate()
			if tc.err == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tc.err)
		})
	}
}

func TestUpdateApply(t *testing.T) {
	contact := int64(4)
	e := Experience{ProjectName: "Harbor", ClientID: 1, ContactID: &contact, DateCompleted: day(2021, 1, 1)}

	name := " Harbor II "
	zero := int64(0)
	Update{ProjectName: &name, ContactID: &zero, Ongoing: true}.Apply(&e)

	assert.Equal(t, "Harbor II", e.ProjectName)
	assert.Nil(t, e.ContactID)
	assert.Nil(t, e.DateCompleted)
	assert.Equal(t, int64(1), e.ClientID)
}

func TestServiceUpdateRejectsInvertedDates(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	e, err := svc.Create(ctx, Experience{ProjectName: "Harbor", ClientID: 1, DateStarted: day(2021, 1, 1)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, e.ID, Update{DateCompleted: day(2020, 1, 1)})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 1, repo.writes)
	assert.Nil(t, repo.rows[e.ID].DateCompleted)

	got, err := svc.Update(ctx, e.ID, Update{DateCompleted: day(2022, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, day(2022, 1, 1), got.DateCompleted)
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	repo := newMemRepo()
	_, err := NewService(repo).Create(context.Background(), Experience{ProjectName: "Harbor"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Zero(t, repo.writes)
}
