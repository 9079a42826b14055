package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/docmaker/pkg/proposal"
)

// ProposalRepository implements proposal.Repository backed by PostgreSQL (pgx).
type ProposalRepository struct {
	pool *pgxpool.Pool
}

func NewProposalRepository(pool *pgxpool.Pool) (*ProposalRepository, error) {
	repo := &ProposalRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ProposalRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS project_proposals (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	context TEXT NOT NULL DEFAULT '',
	project_brief TEXT NOT NULL DEFAULT '',
	scope TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft',
	due_date DATE,
	client_id BIGINT REFERENCES clients(id) ON DELETE SET NULL,
	contact_id BIGINT REFERENCES contacts(id) ON DELETE SET NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`)
	return err
}

const proposalColumns = `
SELECT id, name, context, project_brief, scope, location, status, due_date, client_id, contact_id, created_at, updated_at
FROM project_proposals`

func scanProposal(row scanner) (proposal.Proposal, error) {
	var p proposal.Proposal
	err := row.Scan(&p.ID, &p.Name, &p.Context, &p.ProjectBrief, &p.Scope, &p.Location, &p.Status,
		&p.DueDate, &p.ClientID, &p.ContactID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProposalRepository) Create(ctx context.Context, p *proposal.Proposal) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO project_proposals (name, context, project_brief, scope, location, status, due_date, client_id, contact_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at, updated_at
`, p.Name, p.Context, p.ProjectBrief, p.Scope, p.Location, p.Status, p.DueDate, p.ClientID, p.ContactID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return writeErr(err, "proposal", p.Name)
}

func (r *ProposalRepository) Get(ctx context.Context, id int64) (proposal.Proposal, error) {
	p, err := scanProposal(r.pool.QueryRow(ctx, proposalColumns+` WHERE id = $1`, id))
	if err != nil {
		return proposal.Proposal{}, writeErr(err, "proposal", id)
	}
	return p, nil
}

func (r *ProposalRepository) List(ctx context.Context, limit, offset int) ([]proposal.Proposal, error) {
	rows, err := r.pool.Query(ctx, proposalColumns+` ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limitOrDefault(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []proposal.Proposal{}
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProposalRepository) Update(ctx context.Context, p proposal.Proposal) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE project_proposals SET name = $2, context = $3, project_brief = $4, scope = $5, location = $6,
	status = $7, due_date = $8, client_id = $9, contact_id = $10, updated_at = $11
WHERE id = $1
`, p.ID, p.Name, p.Context, p.ProjectBrief, p.Scope, p.Location, p.Status, p.DueDate, p.ClientID, p.ContactID,
		time.Now().UTC())
	if err != nil {
		return writeErr(err, "proposal", p.ID)
	}
	return affected(tag, "proposal", p.ID)
}

func (r *ProposalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM project_proposals WHERE id = $1`, id)
	if err != nil {
		return deleteErr(err, "proposal", id)
	}
	return affected(tag, "proposal", id)
}
