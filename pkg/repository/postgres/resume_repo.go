package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/docmaker/pkg/resume"
)

// ResumeRepository хранит резюме и строки опыта (resume_experience_details).
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) (*ResumeRepository, error) {
	repo := &ResumeRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ResumeRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS resumes (
	id BIGSERIAL PRIMARY KEY,
	alias TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft',
	generated_content TEXT,
	template_id BIGINT NOT NULL REFERENCES templates(id) ON DELETE RESTRICT,
	proposal_id BIGINT REFERENCES project_proposals(id) ON DELETE SET NULL,
	profile_id BIGINT REFERENCES user_profiles(id) ON DELETE SET NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_resumes_proposal ON resumes(proposal_id);
CREATE TABLE IF NOT EXISTS resume_experience_details (
	resume_id BIGINT NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
	experience_id BIGINT NOT NULL REFERENCES experiences(id) ON DELETE RESTRICT,
	overridden_description TEXT NOT NULL DEFAULT '',
	ai_rewritten_description TEXT NOT NULL DEFAULT '',
	use_ai_version BOOLEAN NOT NULL DEFAULT FALSE,
	display_order INT NOT NULL DEFAULT 0,
	PRIMARY KEY (resume_id, experience_id)
);
`)
	return err
}

const resumeColumns = `
SELECT id, alias, status, generated_content, template_id, proposal_id, profile_id, created_at, updated_at
FROM resumes`

func scanResume(row scanner) (resume.Resume, error) {
	var res resume.Resume
	err := row.Scan(&res.ID, &res.Alias, &res.Status, &res.GeneratedContent, &res.TemplateID,
		&res.ProposalID, &res.ProfileID, &res.CreatedAt, &res.UpdatedAt)
	return res, err
}

func insertDetails(ctx context.Context, tx pgx.Tx, resumeID int64, details []resume.ExperienceDetail) error {
	for _, d := range details {
		_, err := tx.Exec(ctx, `
INSERT INTO resume_experience_details
	(resume_id, experience_id, overridden_description, ai_rewritten_description, use_ai_version, display_order)
VALUES ($1, $2, $3, $4, $5, $6)
`, resumeID, d.ExperienceID, d.OverriddenDescription, d.AIRewrittenDescription, d.UseAIVersion, d.DisplayOrder)
		if err != nil {
			return writeErr(err, "resume experience", d.ExperienceID)
		}
	}
	return nil
}

func (r *ResumeRepository) Create(ctx context.Context, res *resume.Resume, details []resume.ExperienceDetail) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
INSERT INTO resumes (alias, status, generated_content, template_id, proposal_id, profile_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at
`, res.Alias, res.Status, res.GeneratedContent, res.TemplateID, res.ProposalID, res.ProfileID,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return writeErr(err, "resume", res.Alias)
	}
	if err := insertDetails(ctx, tx, res.ID, details); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ResumeRepository) Get(ctx context.Context, id int64) (resume.Resume, error) {
	res, err := scanResume(r.pool.QueryRow(ctx, resumeColumns+` WHERE id = $1`, id))
	if err != nil {
		return resume.Resume{}, writeErr(err, "resume", id)
	}
	return res, nil
}

func (r *ResumeRepository) List(ctx context.Context, limit, offset int) ([]resume.Resume, error) {
	return r.list(ctx, resumeColumns+` ORDER BY updated_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limitOrDefault(limit), offset)
}

func (r *ResumeRepository) ListByProposal(ctx context.Context, proposalID int64, limit, offset int) ([]resume.Resume, error) {
	return r.list(ctx, resumeColumns+` WHERE proposal_id = $3 ORDER BY updated_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limitOrDefault(limit), offset, proposalID)
}

func (r *ResumeRepository) list(ctx context.Context, query string, args ...any) ([]resume.Resume, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []resume.Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ResumeRepository) Update(ctx context.Context, res resume.Resume, details []resume.ExperienceDetail) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
UPDATE resumes SET alias = $2, status = $3, generated_content = $4, template_id = $5, proposal_id = $6,
	profile_id = $7, updated_at = $8
WHERE id = $1
`, res.ID, res.Alias, res.Status, res.GeneratedContent, res.TemplateID, res.ProposalID, res.ProfileID,
		time.Now().UTC())
	if err != nil {
		return writeErr(err, "resume", res.ID)
	}
	if err := affected(tag, "resume", res.ID); err != nil {
		return err
	}
	if details != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM resume_experience_details WHERE resume_id = $1`, res.ID); err != nil {
			return err
		}
		if err := insertDetails(ctx, tx, res.ID, details); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ResumeRepository) SaveContent(ctx context.Context, id int64, content string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE resumes SET generated_content = $2, updated_at = now() WHERE id = $1`,
		id, content)
	if err != nil {
		return err
	}
	return affected(tag, "resume", id)
}

func (r *ResumeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return deleteErr(err, "resume", id)
	}
	return affected(tag, "resume", id)
}

const detailColumns = `
SELECT resume_id, experience_id, overridden_description, ai_rewritten_description, use_ai_version, display_order
FROM resume_experience_details`

func scanDetail(row scanner) (resume.ExperienceDetail, error) {
	var d resume.ExperienceDetail
	err := row.Scan(&d.ResumeID, &d.ExperienceID, &d.OverriddenDescription, &d.AIRewrittenDescription,
		&d.UseAIVersion, &d.DisplayOrder)
	return d, err
}

func (r *ResumeRepository) Details(ctx context.Context, resumeID int64) ([]resume.ExperienceDetail, error) {
	rows, err := r.pool.Query(ctx, detailColumns+` WHERE resume_id = $1 ORDER BY display_order, experience_id`, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []resume.ExperienceDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *ResumeRepository) GetDetail(ctx context.Context, resumeID, experienceID int64) (resume.ExperienceDetail, error) {
	d, err := scanDetail(r.pool.QueryRow(ctx, detailColumns+` WHERE resume_id = $1 AND experience_id = $2`,
		resumeID, experienceID))
	if err != nil {
		return resume.ExperienceDetail{}, writeErr(err, "resume experience", fmt.Sprintf("%d/%d", resumeID, experienceID))
	}
	return d, nil
}

func (r *ResumeRepository) UpdateDetail(ctx context.Context, d resume.ExperienceDetail) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
UPDATE resume_experience_details
SET overridden_description = $3, ai_rewritten_description = $4, use_ai_version = $5, display_order = $6
WHERE resume_id = $1 AND experience_id = $2
`, d.ResumeID, d.ExperienceID, d.OverriddenDescription, d.AIRewrittenDescription, d.UseAIVersion, d.DisplayOrder)
	if err != nil {
		return err
	}
	if err := affected(tag, "resume experience", fmt.Sprintf("%d/%d", d.ResumeID, d.ExperienceID)); err != nil {
		return err
	}
	if err := touch(ctx, tx, d.ResumeID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ResumeRepository) Reorder(ctx context.Context, resumeID int64, items []resume.OrderItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, it := range items {
		// строки не из этого резюме просто не затрагиваются
		if _, err := tx.Exec(ctx, `
UPDATE resume_experience_details SET display_order = $3 WHERE resume_id = $1 AND experience_id = $2
`, resumeID, it.ExperienceID, it.DisplayOrder); err != nil {
			return err
		}
	}
	if err := touch(ctx, tx, resumeID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func touch(ctx context.Context, tx pgx.Tx, resumeID int64) error {
	tag, err := tx.Exec(ctx, `UPDATE resumes SET updated_at = now() WHERE id = $1`, resumeID)
	if err != nil {
		return err
	}
	return affected(tag, "resume", resumeID)
}
