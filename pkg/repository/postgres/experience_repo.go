package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/docmaker/pkg/experience"
)

// ExperienceRepository implements experience.Repository backed by PostgreSQL (pgx).
type ExperienceRepository struct {
	pool *pgxpool.Pool
}

func NewExperienceRepository(pool *pgxpool.Pool) (*ExperienceRepository, error) {
	repo := &ExperienceRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ExperienceRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS experiences (
	id BIGSERIAL PRIMARY KEY,
	project_name TEXT NOT NULL,
	project_description TEXT NOT NULL DEFAULT '',
	project_value NUMERIC(14, 2),
	date_started DATE,
	date_completed DATE,
	location TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '',
	client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
	contact_id BIGINT REFERENCES contacts(id) ON DELETE SET NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_experiences_client ON experiences(client_id);
`)
	return err
}

const experienceColumns = `
SELECT id, project_name, project_description, project_value::FLOAT8, date_started, date_completed,
	location, tags, client_id, contact_id, created_at, updated_at
FROM experiences`

func scanExperience(row scanner) (experience.Experience, error) {
	var e experience.Experience
	err := row.Scan(&e.ID, &e.ProjectName, &e.ProjectDescription, &e.ProjectValue, &e.DateStarted, &e.DateCompleted,
		&e.Location, &e.Tags, &e.ClientID, &e.ContactID, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *ExperienceRepository) Create(ctx context.Context, e *experience.Experience) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO experiences (project_name, project_description, project_value, date_started, date_completed,
	location, tags, client_id, contact_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at, updated_at
`, e.ProjectName, e.ProjectDescription, e.ProjectValue, e.DateStarted, e.DateCompleted,
		e.Location, e.Tags, e.ClientID, e.ContactID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return writeErr(err, "experience", e.ProjectName)
}

func (r *ExperienceRepository) Get(ctx context.Context, id int64) (experience.Experience, error) {
	e, err := scanExperience(r.pool.QueryRow(ctx, experienceColumns+` WHERE id = $1`, id))
	if err != nil {
		return experience.Experience{}, writeErr(err, "experience", id)
	}
	return e, nil
}

func (r *ExperienceRepository) GetMany(ctx context.Context, ids []int64) (map[int64]experience.Experience, error) {
	out := make(map[int64]experience.Experience, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, experienceColumns+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out[e.ID] = e
	}
	return out, rows.Err()
}

func (r *ExperienceRepository) List(ctx context.Context, clientID *int64, limit, offset int) ([]experience.Experience, error) {
	rows, err := r.pool.Query(ctx, experienceColumns+`
WHERE ($1::BIGINT IS NULL OR client_id = $1)
ORDER BY date_started DESC NULLS LAST, id DESC
LIMIT $2 OFFSET $3`, clientID, limitOrDefault(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []experience.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExperienceRepository) Update(ctx context.Context, e experience.Experience) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE experiences SET project_name = $2, project_description = $3, project_value = $4,
	date_started = $5, date_completed = $6, location = $7, tags = $8, client_id = $9,
	contact_id = $10, updated_at = $11
WHERE id = $1
`, e.ID, e.ProjectName, e.ProjectDescription, e.ProjectValue, e.DateStarted, e.DateCompleted,
		e.Location, e.Tags, e.ClientID, e.ContactID, time.Now().UTC())
	if err != nil {
		return writeErr(err, "experience", e.ID)
	}
	return affected(tag, "experience", e.ID)
}

func (r *ExperienceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return deleteErr(err, "experience", id)
	}
	return affected(tag, "experience", id)
}
