package repository

import (
	"context"
	"time"

	"talent-admin/internal/database"
	"talent-admin/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	ListCompanies(ctx context.Context) ([]company.Company, error)
	ListUnverifiedCompanies(ctx context.Context) ([]company.Company, error)
	GetCompanyByID(ctx context.Context, id uuid.UUID) (company.Company, error)
	SetCompanyVerified(ctx context.Context, id uuid.UUID, verified bool, at time.Time) (company.Company, error)
	UpdateHiringRate(ctx context.Context, id uuid.UUID, rate int, at time.Time) error
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, name, user_id, tin, phone_number, email, address, country,
	business_licence, established_date::text, business_description, website,
	is_owner, is_verified, COALESCE(request_verify, false), hiring_rate, created_at, updated_at`

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.UserID, &c.TIN, &c.PhoneNumber, &c.Email, &c.Address, &c.Country,
		&c.BusinessLicence, &c.EstablishedDate, &c.BusinessDescription, &c.Website,
		&c.IsOwner, &c.IsVerified, &c.RequestVerify, &c.HiringRate, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *PostgresCompanyRepository) ListCompanies(ctx context.Context) ([]company.Company, error) {
	return r.list(ctx, `SELECT `+companyColumns+` FROM employers ORDER BY created_at DESC`)
}

func (r *PostgresCompanyRepository) ListUnverifiedCompanies(ctx context.Context) ([]company.Company, error) {
	return r.list(ctx, `SELECT `+companyColumns+` FROM employers WHERE is_verified = false ORDER BY created_at DESC`)
}

func (r *PostgresCompanyRepository) list(ctx context.Context, query string, args ...any) ([]company.Company, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) GetCompanyByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM employers WHERE id = $1`, id))
	if err != nil {
		return company.Company{}, mapNoRows(err)
	}
	return c, nil
}

func (r *PostgresCompanyRepository) SetCompanyVerified(ctx context.Context, id uuid.UUID, verified bool, at time.Time) (company.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx,
		`UPDATE employers SET is_verified = $2, updated_at = $3 WHERE id = $1 RETURNING `+companyColumns,
		id, verified, at,
	))
	if err != nil {
		return company.Company{}, mapNoRows(err)
	}
	return c, nil
}

func (r *PostgresCompanyRepository) UpdateHiringRate(ctx context.Context, id uuid.UUID, rate int, at time.Time) error {
	n, err := r.db.Exec(ctx, `UPDATE employers SET hiring_rate = $2, updated_at = $3 WHERE id = $1`, id, rate, at)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
