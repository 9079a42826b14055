package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/docmaker/pkg/project"
)

// ProjectRepository implements project.Repository backed by PostgreSQL (pgx).
type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) (*ProjectRepository, error) {
	repo := &ProjectRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ProjectRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS projects (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	date DATE,
	contract_value NUMERIC(14, 2) CHECK (contract_value >= 0),
	location TEXT NOT NULL DEFAULT '',
	client_id BIGINT REFERENCES clients(id) ON DELETE SET NULL,
	contact_id BIGINT REFERENCES contacts(id) ON DELETE SET NULL,
	main_image_id BIGINT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id);
`)
	return err
}

const projectColumns = `
SELECT id, name, description, date, contract_value::FLOAT8, location, client_id, contact_id, main_image_id,
	created_at, updated_at
FROM projects`

func scanProject(row scanner) (project.Project, error) {
	var p project.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Date, &p.ContractValue, &p.Location,
		&p.ClientID, &p.ContactID, &p.MainImageID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO projects (name, description, date, contract_value, location, client_id, contact_id, main_image_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at
`, p.Name, p.Description, p.Date, p.ContractValue, p.Location, p.ClientID, p.ContactID, p.MainImageID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return writeErr(err, "project", p.Name)
}

func (r *ProjectRepository) Get(ctx context.Context, id int64) (project.Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx, projectColumns+` WHERE id = $1`, id))
	if err != nil {
		return project.Project{}, writeErr(err, "project", id)
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context, limit, offset int) ([]project.Project, error) {
	rows, err := r.pool.Query(ctx, projectColumns+` ORDER BY date DESC NULLS LAST, id DESC LIMIT $1 OFFSET $2`,
		limitOrDefault(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []project.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p project.Project) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE projects SET name = $2, description = $3, date = $4, contract_value = $5, location = $6,
	client_id = $7, contact_id = $8, main_image_id = $9, updated_at = $10
WHERE id = $1
`, p.ID, p.Name, p.Description, p.Date, p.ContractValue, p.Location, p.ClientID, p.ContactID, p.MainImageID,
		time.Now().UTC())
	if err != nil {
		return writeErr(err, "project", p.ID)
	}
	return affected(tag, "project", p.ID)
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return deleteErr(err, "project", id)
	}
	return affected(tag, "project", id)
}
