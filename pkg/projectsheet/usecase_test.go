package projectsheet

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/apperrors"
	"github.com/artem13815/docmaker/pkg/auth"
	"github.com/artem13815/docmaker/pkg/client"
	"github.com/artem13815/docmaker/pkg/media"
	"github.com/artem13815/docmaker/pkg/project"
	"github.com/artem13815/docmaker/pkg/render"
)

type memSheets struct {
	rows   map[int64]Sheet
	nextID int64
}

func (m *memSheets) Create(_ context.Context, s *Sheet) error {
	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = time.Unix(m.nextID, 0)
	m.rows[s.ID] = *s
	return nil
}

func (m *memSheets) Get(_ context.Context, owner uuid.UUID, id int64) (Sheet, error) {
	s, ok := m.rows[id]
	if !ok || s.GeneratedBy != owner {
		return Sheet{}, apperrors.NotFound("project sheet", id)
	}
	return s, nil
}

func (m *memSheets) List(_ context.Context, owner uuid.UUID, _, _ int) ([]Sheet, error) {
	out := []Sheet{}
	for _, s := range m.rows {
		if s.GeneratedBy == owner {
			s.GeneratedContent = ""
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memSheets) Update(_ context.Context, s Sheet) error {
	m.rows[s.ID] = s
	return nil
}

func (m *memSheets) Delete(_ context.Context, owner uuid.UUID, id int64) error {
	if s, ok := m.rows[id]; !ok || s.GeneratedBy != owner {
		return apperrors.NotFound("project sheet", id)
	}
	delete(m.rows, id)
	return nil
}

type memProjects map[int64]project.Project

func (m memProjects) Get(_ context.Context, id int64) (project.Project, error) {
	p, ok := m[id]
	if !ok {
		return project.Project{}, apperrors.NotFound("project", id)
	}
	return p, nil
}

type memClients struct{}

func (memClients) Get(_ context.Context, id int64) (client.Client, error) {
	if id == 7 {
		return client.Client{ID: 7, ClientName: "Acme", Website: "acme.test", MainEmail: "info@acme.test"}, nil
	}
	return client.Client{}, apperrors.NotFound("client", id)
}

func (memClients) GetContact(_ context.Context, id int64) (client.Contact, error) {
	return client.Contact{}, apperrors.NotFound("contact", id)
}

type memUsers map[uuid.UUID]auth.User

func (m memUsers) Me(_ context.Context, id uuid.UUID) (auth.User, error) {
	u, ok := m[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

type stubExporter struct{ got string }

func (s *stubExporter) Export(_ context.Context, html string) ([]byte, error) {
	s.got = html
	return []byte("%PDF"), nil
}

func newTestService(t *testing.T, projects memProjects, owner uuid.UUID) (*service, *memSheets, *stubExporter) {
	t.Helper()
	sheets := &memSheets{rows: map[int64]Sheet{}}
	exp := &stubExporter{}
	svc := NewService(sheets, projects, memClients{}, memUsers{owner: {ID: owner, Email: "pm@example.com", FullName: "Pat"}},
		render.New(), exp, media.NewURLBuilder("http://media.test"), nil).(*service)
	svc.now = func() time.Time { return time.Date(2025, time.March, 4, 15, 5, 0, 0, time.UTC) }
	return svc, sheets, exp
}

func TestCreateSnapshotsProject(t *testing.T) {
	owner := uuid.New()
	clientID, contactID, img := int64(7), int64(3), int64(42)
	value := 1500.5
	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, memProjects{
		1: {ID: 1, Name: "Ring Road", ContractValue: &value, Date: &date, ClientID: &clientID, ContactID: &contactID, MainImageID: &img},
	}, owner)

	sh, err := svc.Create(context.Background(), owner, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Ring Road - Project Sheet", sh.Title)
	assert.Equal(t, StatusGenerated, sh.Status)
	assert.Equal(t, owner, sh.GeneratedBy)

	d := sh.TemplateData
	require.NotNil(t, d.Project.Date)
	assert.Equal(t, "2024-06-01", *d.Project.Date)
	assert.Equal(t, "http://media.test/api/media/42/raw", *d.Project.MainImageURL)
	require.NotNil(t, d.Client)
	assert.Equal(t, "Acme", d.Client.Name)
	assert.Nil(t, d.Contact, "missing contact is omitted")
	assert.Equal(t, UserData{Name: "Pat", Email: "pm@example.com"}, d.User)
	assert.Equal(t, "March 04, 2025 at 03:05 PM", d.GeneratedDate)

	assert.Contains(t, sh.GeneratedContent, "<h1>Ring Road</h1>")
	assert.Contains(t, sh.GeneratedContent, "$1500.50")
	assert.Contains(t, sh.GeneratedContent, "<h2>Client</h2>")
	assert.NotContains(t, sh.GeneratedContent, "<h2>Contact</h2>")
	assert.Contains(t, sh.GeneratedContent, "Prepared by Pat")
}

func TestCreateUnknownProject(t *testing.T) {
	owner := uuid.New()
	svc, sheets, _ := newTestService(t, memProjects{}, owner)
	_, err := svc.Create(context.Background(), owner, 9, "x")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, sheets.rows)
}

func TestRegenerateUsesCurrentProject(t *testing.T) {
	owner := uuid.New()
	projects := memProjects{1: {ID: 1, Name: "Ring Road"}}
	svc, _, _ := newTestService(t, projects, owner)
	ctx := context.Background()

	sh, err := svc.Create(ctx, owner, 1, "Showcase")
	require.NoError(t, err)

	projects[1] = project.Project{ID: 1, Name: "Ring Road II", Location: "Oslo"}
	sh, err = svc.Regenerate(ctx, owner, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, "Showcase", sh.Title)
	assert.Equal(t, "Ring Road II", sh.TemplateData.Project.Name)
	assert.Contains(t, sh.GeneratedContent, "Oslo")

	_, err = svc.Regenerate(ctx, uuid.New(), sh.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDownload(t *testing.T) {
	owner := uuid.New()
	svc, sheets, exp := newTestService(t, memProjects{1: {ID: 1, Name: "Ring Road"}}, owner)
	ctx := context.Background()

	sh, err := svc.Create(ctx, owner, 1, "Ring Road Showcase")
	require.NoError(t, err)

	name, data, err := svc.Download(ctx, owner, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ring_Road_Showcase_sheet_1.pdf", name)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Equal(t, sh.GeneratedContent, exp.got)

	stored := sheets.rows[sh.ID]
	stored.GeneratedContent = ""
	sheets.rows[sh.ID] = stored
	_, _, err = svc.Download(ctx, owner, sh.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListIsOwnerScoped(t *testing.T) {
	owner := uuid.New()
	svc, _, _ := newTestService(t, memProjects{1: {ID: 1, Name: "A"}}, owner)
	ctx := context.Background()
	_, err := svc.Create(ctx, owner, 1, "first")
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, 1, "second")
	require.NoError(t, err)

	list, err := svc.List(ctx, owner, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Empty(t, list[0].GeneratedContent)

	other, err := svc.List(ctx, uuid.New(), 50, 0)
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, svc.Delete(ctx, owner, list[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner, list[0].ID), apperrors.ErrNotFound)
}
