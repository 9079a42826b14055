package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/docmaker/pkg/profile"
)

// ProfileRepository implements profile.Repository. Skills, certifications and
// education are stored as JSONB arrays.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	repo := &ProfileRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS user_profiles (
	id BIGSERIAL PRIMARY KEY,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	full_name TEXT NOT NULL DEFAULT '',
	current_title TEXT NOT NULL DEFAULT '',
	professional_intro TEXT NOT NULL DEFAULT '',
	department TEXT NOT NULL DEFAULT '',
	employee_type TEXT NOT NULL DEFAULT '',
	is_current_employee BOOLEAN NOT NULL DEFAULT TRUE,
	email TEXT NOT NULL DEFAULT '',
	mobile TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	about_url TEXT NOT NULL DEFAULT '',
	main_image_id BIGINT,
	skills JSONB NOT NULL DEFAULT '[]',
	certifications JSONB NOT NULL DEFAULT '[]',
	education JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`)
	return err
}

const profileColumns = `
SELECT id, first_name, last_name, full_name, current_title, professional_intro, department, employee_type,
	is_current_employee, email, mobile, address, about_url, main_image_id, skills, certifications, education,
	created_at, updated_at
FROM user_profiles`

func scanProfile(row scanner) (profile.Profile, error) {
	var (
		p                  profile.Profile
		skills, certs, edu []byte
	)
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.FullName, &p.CurrentTitle, &p.ProfessionalIntro,
		&p.Department, &p.EmployeeType, &p.IsCurrentEmployee, &p.Email, &p.Mobile, &p.Address, &p.AboutURL,
		&p.MainImageID, &skills, &certs, &edu, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return profile.Profile{}, err
	}
	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return profile.Profile{}, fmt.Errorf("decode skills: %w", err)
	}
	if err := json.Unmarshal(certs, &p.Certifications); err != nil {
		return profile.Profile{}, fmt.Errorf("decode certifications: %w", err)
	}
	if err := json.Unmarshal(edu, &p.Education); err != nil {
		return profile.Profile{}, fmt.Errorf("decode education: %w", err)
	}
	p.Normalize()
	return p, nil
}

func encodeCollections(p profile.Profile) (skills, certs, edu []byte, err error) {
	p.Normalize()
	if skills, err = json.Marshal(p.Skills); err != nil {
		return nil, nil, nil, err
	}
	if certs, err = json.Marshal(p.Certifications); err != nil {
		return nil, nil, nil, err
	}
	if edu, err = json.Marshal(p.Education); err != nil {
		return nil, nil, nil, err
	}
	return skills, certs, edu, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	skills, certs, edu, err := encodeCollections(*p)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx, `
INSERT INTO user_profiles (first_name, last_name, full_name, current_title, professional_intro, department,
	employee_type, is_current_employee, email, mobile, address, about_url, main_image_id, skills, certifications, education)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING id, created_at, updated_at
`, p.FirstName, p.LastName, p.FullName, p.CurrentTitle, p.ProfessionalIntro, p.Department,
		p.EmployeeType, p.IsCurrentEmployee, p.Email, p.Mobile, p.Address, p.AboutURL, p.MainImageID,
		string(skills), string(certs), string(edu),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return writeErr(err, "profile", p.DisplayName())
}

func (r *ProfileRepository) Get(ctx context.Context, id int64) (profile.Profile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, profileColumns+` WHERE id = $1`, id))
	if err != nil {
		return profile.Profile{}, writeErr(err, "profile", id)
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context, q string, limit, offset int) ([]profile.Profile, error) {
	pattern := ""
	if q = strings.TrimSpace(q); q != "" {
		pattern = "%" + strings.ToLower(q) + "%"
	}
	rows, err := r.pool.Query(ctx, profileColumns+`
WHERE $1 = '' OR lower(full_name || ' ' || first_name || ' ' || last_name || ' ' || current_title) LIKE $1
ORDER BY last_name, first_name, id
LIMIT $2 OFFSET $3`, pattern, limitOrDefault(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []profile.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	skills, certs, edu, err := encodeCollections(p)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE user_profiles SET first_name = $2, last_name = $3, full_name = $4, current_title = $5,
	professional_intro = $6, department = $7, employee_type = $8, is_current_employee = $9, email = $10,
	mobile = $11, address = $12, about_url = $13, main_image_id = $14, skills = $15, certifications = $16,
	education = $17, updated_at = $18
WHERE id = $1
`, p.ID, p.FirstName, p.LastName, p.FullName, p.CurrentTitle, p.ProfessionalIntro, p.Department,
		p.EmployeeType, p.IsCurrentEmployee, p.Email, p.Mobile, p.Address, p.AboutURL, p.MainImageID,
		string(skills), string(certs), string(edu), time.Now().UTC())
	if err != nil {
		return writeErr(err, "profile", p.ID)
	}
	return affected(tag, "profile", p.ID)
}

func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return deleteErr(err, "profile", id)
	}
	return affected(tag, "profile", id)
}
