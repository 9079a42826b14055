package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/docmaker/pkg/template"
)

// TemplateRepository implements template.Repository. A partial unique index
// keeps at most one default row; flag changes clear the old default first.
type TemplateRepository struct {
	pool *pgxpool.Pool
}

func NewTemplateRepository(pool *pgxpool.Pool) (*TemplateRepository, error) {
	repo := &TemplateRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *TemplateRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS templates (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	is_default BOOLEAN NOT NULL DEFAULT FALSE,
	version INT NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS templates_single_default ON templates(is_default) WHERE is_default;
`)
	return err
}

const templateColumns = `
SELECT id, name, description, content, is_default, version, created_at, updated_at
FROM templates`

func scanTemplate(row scanner) (template.Template, error) {
	var t template.Template
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Content, &t.IsDefault, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func clearDefault(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `UPDATE templates SET is_default = FALSE WHERE is_default`)
	return err
}

func (r *TemplateRepository) Create(ctx context.Context, t *template.Template) error {
	if t.Version <= 0 {
		t.Version = 1
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if t.IsDefault {
		if err := clearDefault(ctx, tx); err != nil {
			return err
		}
	}
	err = tx.QueryRow(ctx, `
INSERT INTO templates (name, description, content, is_default, version)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at
`, t.Name, t.Description, t.Content, t.IsDefault, t.Version).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return writeErr(err, "template", t.Name)
	}
	return tx.Commit(ctx)
}

func (r *TemplateRepository) Get(ctx context.Context, id int64) (template.Template, error) {
	t, err := scanTemplate(r.pool.QueryRow(ctx, templateColumns+` WHERE id = $1`, id))
	if err != nil {
		return template.Template{}, writeErr(err, "template", id)
	}
	return t, nil
}

func (r *TemplateRepository) GetDefault(ctx context.Context) (template.Template, error) {
	t, err := scanTemplate(r.pool.QueryRow(ctx, templateColumns+` WHERE is_default LIMIT 1`))
	if err != nil {
		return template.Template{}, writeErr(err, "template", "default")
	}
	return t, nil
}

func (r *TemplateRepository) List(ctx context.Context, limit, offset int) ([]template.Template, error) {
	rows, err := r.pool.Query(ctx, templateColumns+` ORDER BY is_default DESC, name, id LIMIT $1 OFFSET $2`,
		limitOrDefault(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []template.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update stores name, description, content and version. The default flag is
// only changed through SetDefault.
func (r *TemplateRepository) Update(ctx context.Context, t template.Template) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE templates SET name = $2, description = $3, content = $4, version = $5, updated_at = $6
WHERE id = $1
`, t.ID, t.Name, t.Description, t.Content, t.Version, time.Now().UTC())
	if err != nil {
		return writeErr(err, "template", t.ID)
	}
	return affected(tag, "template", t.ID)
}

func (r *TemplateRepository) SetDefault(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := clearDefault(ctx, tx); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `UPDATE templates SET is_default = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return writeErr(err, "template", id)
	}
	if err := affected(tag, "template", id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return deleteErr(err, "template", id)
	}
	return affected(tag, "template", id)
}
