// Package projectsheet renders one page project showcases from stored projects.
package projectsheet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/docmaker/pkg/apperrors"
	"github.com/artem13815/docmaker/pkg/auth"
	"github.com/artem13815/docmaker/pkg/client"
	"github.com/artem13815/docmaker/pkg/logger"
	"github.com/artem13815/docmaker/pkg/media"
	"github.com/artem13815/docmaker/pkg/project"
	"github.com/artem13815/docmaker/pkg/render"
)

const generatedDateLayout = "January 02, 2006 at 03:04 PM"

type UseCase interface {
	Create(ctx context.Context, owner uuid.UUID, projectID int64, title string) (Sheet, error)
	Get(ctx context.Context, owner uuid.UUID, id int64) (Sheet, error)
	List(ctx context.Context, owner uuid.UUID, limit, offset int) ([]Sheet, error)
	// Regenerate rebuilds the snapshot from current project data and re-renders.
	Regenerate(ctx context.Context, owner uuid.UUID, id int64) (Sheet, error)
	Delete(ctx context.Context, owner uuid.UUID, id int64) error
	// Download prints the stored content to PDF.
	Download(ctx context.Context, owner uuid.UUID, id int64) (filename string, data []byte, err error)
}

type ProjectSource interface {
	Get(ctx context.Context, id int64) (project.Project, error)
}

type ClientSource interface {
	Get(ctx context.Context, id int64) (client.Client, error)
	GetContact(ctx context.Context, id int64) (client.Contact, error)
}

type UserSource interface {
	Me(ctx context.Context, id uuid.UUID) (auth.User, error)
}

type Renderer interface {
	Render(source string, vars map[string]any) (string, error)
}

type Exporter interface {
	Export(ctx context.Context, html string) ([]byte, error)
}

type service struct {
	sheets   Repository
	projects ProjectSource
	clients  ClientSource
	users    UserSource
	renderer Renderer
	exporter Exporter
	media    media.URLBuilder
	now      func() time.Time
	log      *zap.Logger
}

func NewService(
	sheets Repository,
	projects ProjectSource,
	clients ClientSource,
	users UserSource,
	renderer Renderer,
	exporter Exporter,
	urls media.URLBuilder,
	log *zap.Logger,
) UseCase {
	return &service{
		sheets:   sheets,
		projects: projects,
		clients:  clients,
		users:    users,
		renderer: renderer,
		exporter: exporter,
		media:    urls,
		now:      time.Now,
		log:      logger.OrNop(log).Named("projectsheet"),
	}
}

func (s *service) Create(ctx context.Context, owner uuid.UUID, projectID int64, title string) (Sheet, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return Sheet{}, err
	}
	data, html, err := s.build(ctx, owner, p)
	if err != nil {
		return Sheet{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = p.Name + " - Project Sheet"
	}
	sh := Sheet{
		ProjectID:        p.ID,
		ProjectName:      p.Name,
		Title:            title,
		Status:           StatusGenerated,
		GeneratedBy:      owner,
		GeneratedContent: html,
		TemplateData:     data,
	}
	if err := s.sheets.Create(ctx, &sh); err != nil {
		return Sheet{}, err
	}
	s.log.Info("project sheet created", zap.Int64("sheet_id", sh.ID), zap.Int64("project_id", p.ID))
	return sh, nil
}

func (s *service) Get(ctx context.Context, owner uuid.UUID, id int64) (Sheet, error) {
	return s.sheets.Get(ctx, owner, id)
}

func (s *service) List(ctx context.Context, owner uuid.UUID, limit, offset int) ([]Sheet, error) {
	return s.sheets.List(ctx, owner, limit, offset)
}

func (s *service) Regenerate(ctx context.Context, owner uuid.UUID, id int64) (Sheet, error) {
	sh, err := s.sheets.Get(ctx, owner, id)
	if err != nil {
		return Sheet{}, err
	}
	p, err := s.projects.Get(ctx, sh.ProjectID)
	if err != nil {
		return Sheet{}, err
	}
	data, html, err := s.build(ctx, owner, p)
	if err != nil {
		return Sheet{}, err
	}
	sh.TemplateData = data
	sh.GeneratedContent = html
	sh.Status = StatusGenerated
	sh.ProjectName = p.Name
	if err := s.sheets.Update(ctx, sh); err != nil {
		return Sheet{}, err
	}
	return s.sheets.Get(ctx, owner, id)
}

func (s *service) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	return s.sheets.Delete(ctx, owner, id)
}

func (s *service) Download(ctx context.Context, owner uuid.UUID, id int64) (string, []byte, error) {
	sh, err := s.sheets.Get(ctx, owner, id)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(sh.GeneratedContent) == "" {
		return "", nil, apperrors.Validation("project sheet %d has no generated content", id)
	}
	data, err := s.exporter.Export(ctx, sh.GeneratedContent)
	if err != nil {
		return "", nil, err
	}
	return Filename(sh), data, nil
}

// Filename is "<title with spaces as _>_sheet_<id>.pdf".
func Filename(sh Sheet) string {
	return fmt.Sprintf("%s_sheet_%d.pdf", strings.ReplaceAll(sh.Title, " ", "_"), sh.ID)
}

func (s *service) build(ctx context.Context, owner uuid.UUID, p project.Project) (Data, string, error) {
	data, err := s.snapshot(ctx, owner, p)
	if err != nil {
		return Data{}, "", err
	}
	src, err := render.Bundled(render.ProjectSheetTemplate)
	if err != nil {
		return Data{}, "", err
	}
	html, err := s.renderer.Render(src, data.Map())
	if err != nil {
		return Data{}, "", fmt.Errorf("render project sheet: %w", err)
	}
	return data, html, nil
}

// snapshot collects the template data. Missing client or contact rows are omitted.
func (s *service) snapshot(ctx context.Context, owner uuid.UUID, p project.Project) (Data, error) {
	user, err := s.users.Me(ctx, owner)
	if err != nil {
		return Data{}, fmt.Errorf("load user: %w", err)
	}
	d := Data{
		Project: ProjectData{
			Name:          p.Name,
			Description:   p.Description,
			ContractValue: p.ContractValue,
			Location:      p.Location,
			MainImageURL:  s.media.URL(p.MainImageID),
		},
		User:          UserData{Name: user.DisplayName(), Email: user.Email},
		GeneratedDate: s.now().Format(generatedDateLayout),
	}
	if p.Date != nil {
		date := p.Date.Format("2006-01-02")
		d.Project.Date = &date
	}
	if p.ClientID != nil {
		if c, err := s.clients.Get(ctx, *p.ClientID); err == nil {
			d.Client = &ClientData{Name: c.ClientName, Website: c.Website, Email: c.MainEmail, Phone: c.MainPhone}
		}
	}
	if p.ContactID != nil {
		if c, err := s.clients.GetContact(ctx, *p.ContactID); err == nil {
			d.Contact = &ContactData{Name: c.ContactName, Email: c.Email, Phone: c.Phone}
		}
	}
	return d, nil
}
