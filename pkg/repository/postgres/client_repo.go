package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/docmaker/pkg/client"
)

// ClientRepository implements client.Repository backed by PostgreSQL (pgx).
// It also owns the contacts table, which clients point to for their main contact.
type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) (*ClientRepository, error) {
	repo := &ClientRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ClientRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS clients (
	id BIGSERIAL PRIMARY KEY,
	client_name TEXT NOT NULL UNIQUE,
	website TEXT NOT NULL DEFAULT '',
	main_email TEXT NOT NULL DEFAULT '',
	main_phone TEXT NOT NULL DEFAULT '',
	main_contact_id BIGINT,
	last_contact_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS contacts (
	id BIGSERIAL PRIMARY KEY,
	contact_name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	client_id BIGINT REFERENCES clients(id) ON DELETE SET NULL,
	last_contact_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS contacts_email_key ON contacts (lower(email)) WHERE email <> '';
CREATE INDEX IF NOT EXISTS idx_contacts_client ON contacts(client_id);
-- clients and contacts reference each other, so this FK is added after both tables exist
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'clients_main_contact_fk') THEN
		ALTER TABLE clients ADD CONSTRAINT clients_main_contact_fk
			FOREIGN KEY (main_contact_id) REFERENCES contacts(id) ON DELETE SET NULL;
	END IF;
END $$;
`)
	return err
}

const clientColumns = `
SELECT c.id, c.client_name, c.website, c.main_email, c.main_phone, c.main_contact_id,
	COALESCE(ct.contact_name, ''), c.last_contact_date, c.created_at, c.updated_at
FROM clients c
LEFT JOIN contacts ct ON ct.id = c.main_contact_id`

func scanClient(row scanner) (client.Client, error) {
	var c client.Client
	err := row.Scan(&c.ID, &c.ClientName, &c.Website, &c.MainEmail, &c.MainPhone, &c.MainContactID,
		&c.MainContactName, &c.LastContactDate, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO clients (client_name, website, main_email, main_phone, main_contact_id, last_contact_date)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at
`, strings.TrimSpace(c.ClientName), c.Website, c.MainEmail, c.MainPhone, c.MainContactID, c.LastContactDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return writeErr(err, "client", c.ClientName)
}

func (r *ClientRepository) Get(ctx context.Context, id int64) (client.Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx, clientColumns+` WHERE c.id = $1`, id))
	if err != nil {
		return client.Client{}, writeErr(err, "client", id)
	}
	return c, nil
}

func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]client.Client, error) {
	rows, err := r.pool.Query(ctx, clientColumns+` ORDER BY c.client_name LIMIT $1 OFFSET $2`, limitOrDefault(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []client.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, c client.Client) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE clients SET client_name = $2, website = $3, main_email = $4, main_phone = $5,
	main_contact_id = $6, last_contact_date = $7, updated_at = $8
WHERE id = $1
`, c.ID, c.ClientName, c.Website, c.MainEmail, c.MainPhone, c.MainContactID, c.LastContactDate, time.Now().UTC())
	if err != nil {
		return writeErr(err, "client", c.ID)
	}
	return affected(tag, "client", c.ID)
}

// Delete refuses clients that experiences still reference.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return deleteErr(err, "client", id)
	}
	return affected(tag, "client", id)
}

// ContactRepository implements client.ContactRepository. Its table is created
// by NewClientRepository.
type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

const contactColumns = `
SELECT id, contact_name, email, phone, client_id, last_contact_date, created_at, updated_at
FROM contacts`

func scanContact(row scanner) (client.Contact, error) {
	var c client.Contact
	err := row.Scan(&c.ID, &c.ContactName, &c.Email, &c.Phone, &c.ClientID, &c.LastContactDate, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *ContactRepository) Create(ctx context.Context, c *client.Contact) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO contacts (contact_name, email, phone, client_id, last_contact_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at
`, c.ContactName, c.Email, c.Phone, c.ClientID, c.LastContactDate).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return writeErr(err, "contact", c.ContactName)
}

func (r *ContactRepository) Get(ctx context.Context, id int64) (client.Contact, error) {
	c, err := scanContact(r.pool.QueryRow(ctx, contactColumns+` WHERE id = $1`, id))
	if err != nil {
		return client.Contact{}, writeErr(err, "contact", id)
	}
	return c, nil
}

func (r *ContactRepository) List(ctx context.Context, clientID *int64, limit, offset int) ([]client.Contact, error) {
	rows, err := r.pool.Query(ctx, contactColumns+`
WHERE ($1::BIGINT IS NULL OR client_id = $1)
ORDER BY contact_name LIMIT $2 OFFSET $3`, clientID, limitOrDefault(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []client.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContactRepository) Update(ctx context.Context, c client.Contact) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE contacts SET contact_name = $2, email = $3, phone = $4, client_id = $5,
	last_contact_date = $6, updated_at = $7
WHERE id = $1
`, c.ID, c.ContactName, c.Email, c.Phone, c.ClientID, c.LastContactDate, time.Now().UTC())
	if err != nil {
		return writeErr(err, "contact", c.ID)
	}
	return affected(tag, "contact", c.ID)
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return deleteErr(err, "contact", id)
	}
	return affected(tag, "contact", id)
}
