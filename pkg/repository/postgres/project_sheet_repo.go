package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/docmaker/pkg/projectsheet"
)

// ProjectSheetRepository implements projectsheet.Repository. Every read is
// scoped to the generating user; the template snapshot is kept as JSONB.
type ProjectSheetRepository struct {
	pool *pgxpool.Pool
}

func NewProjectSheetRepository(pool *pgxpool.Pool) (*ProjectSheetRepository, error) {
	repo := &ProjectSheetRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ProjectSheetRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS project_sheets (
	id BIGSERIAL PRIMARY KEY,
	project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'generated',
	generated_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	generated_content TEXT NOT NULL DEFAULT '',
	template_data JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_project_sheets_owner ON project_sheets(generated_by, created_at DESC);
`)
	return err
}

func (r *ProjectSheetRepository) Create(ctx context.Context, s *projectsheet.Sheet) error {
	data, err := json.Marshal(s.TemplateData)
	if err != nil {
		return fmt.Errorf("encode template data: %w", err)
	}
	err = r.pool.QueryRow(ctx, `
INSERT INTO project_sheets (project_id, title, status, generated_by, generated_content, template_data)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at
`, s.ProjectID, s.Title, s.Status, s.GeneratedBy, s.GeneratedContent, string(data),
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return writeErr(err, "project sheet", s.Title)
}

func (r *ProjectSheetRepository) Get(ctx context.Context, owner uuid.UUID, id int64) (projectsheet.Sheet, error) {
	row := r.pool.QueryRow(ctx, `
SELECT s.id, s.project_id, p.name, s.title, s.status, s.generated_by, s.generated_content, s.template_data,
	s.created_at, s.updated_at
FROM project_sheets s
JOIN projects p ON p.id = s.project_id
WHERE s.id = $1 AND s.generated_by = $2
`, id, owner)
	var (
		s    projectsheet.Sheet
		data []byte
	)
	if err := row.Scan(&s.ID, &s.ProjectID, &s.ProjectName, &s.Title, &s.Status, &s.GeneratedBy,
		&s.GeneratedContent, &data, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return projectsheet.Sheet{}, writeErr(err, "project sheet", id)
	}
	if err := json.Unmarshal(data, &s.TemplateData); err != nil {
		return projectsheet.Sheet{}, fmt.Errorf("decode template data: %w", err)
	}
	return s, nil
}

func (r *ProjectSheetRepository) List(ctx context.Context, owner uuid.UUID, limit, offset int) ([]projectsheet.Sheet, error) {
	rows, err := r.pool.Query(ctx, `
SELECT s.id, s.project_id, p.name, s.title, s.status, s.generated_by, s.created_at, s.updated_at
FROM project_sheets s
JOIN projects p ON p.id = s.project_id
WHERE s.generated_by = $3
ORDER BY s.created_at DESC, s.id DESC
LIMIT $1 OFFSET $2
`, limitOrDefault(limit), offset, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []projectsheet.Sheet{}
	for rows.Next() {
		var s projectsheet.Sheet
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.ProjectName, &s.Title, &s.Status, &s.GeneratedBy,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ProjectSheetRepository) Update(ctx context.Context, s projectsheet.Sheet) error {
	data, err := json.Marshal(s.TemplateData)
	if err != nil {
		return fmt.Errorf("encode template data: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE project_sheets SET title = $3, status = $4, generated_content = $5, template_data = $6, updated_at = $7
WHERE id = $1 AND generated_by = $2
`, s.ID, s.GeneratedBy, s.Title, s.Status, s.GeneratedContent, string(data), time.Now().UTC())
	if err != nil {
		return writeErr(err, "project sheet", s.ID)
	}
	return affected(tag, "project sheet", s.ID)
}

func (r *ProjectSheetRepository) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM project_sheets WHERE id = $1 AND generated_by = $2`, id, owner)
	if err != nil {
		return deleteErr(err, "project sheet", id)
	}
	return affected(tag, "project sheet", id)
}
