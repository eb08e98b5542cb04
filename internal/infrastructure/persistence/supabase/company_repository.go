package supabase

import (
	"context"
	"fmt"
	"time"

	"talent-admin/internal/domain/company"
	"talent-admin/internal/repository"

	"github.com/google/uuid"
	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
)

type CompanyRepository struct {
	client *Client
}

func NewCompanyRepository(client *Client) *CompanyRepository {
	return &CompanyRepository{client: client}
}

func (r *CompanyRepository) ListCompanies(ctx context.Context) ([]company.Company, error) {
	return r.list(ctx, "list employers", nil)
}

func (r *CompanyRepository) ListUnverifiedCompanies(ctx context.Context) ([]company.Company, error) {
	return r.list(ctx, "list unverified employers", func(b *postgrest.SelectRequestBuilder) {
		b.Eq("is_verified", "false")
	})
}

func (r *CompanyRepository) list(ctx context.Context, op string, filter func(*postgrest.SelectRequestBuilder)) ([]company.Company, error) {
	rows, err := selectAll[employerRow](ctx, r.client, op, func() *postgrest.SelectRequestBuilder {
		b := newestFirst(r.client.from(tableEmployers).Select("*"))
		if filter != nil {
			filter(b)
		}
		return b
	})
	if err != nil {
		return nil, err
	}
	out := make([]company.Company, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CompanyRepository) GetCompanyByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	var rows []employerRow
	if err := r.client.from(tableEmployers).Select("*").Eq("id", id.String()).ExecuteWithContext(ctx, &rows); err != nil {
		return company.Company{}, fmt.Errorf("supabase get employer: %w", err)
	}
	if len(rows) == 0 {
		return company.Company{}, repository.ErrNotFound
	}
	return rows[0].toDomain(), nil
}

func (r *CompanyRepository) SetCompanyVerified(ctx context.Context, id uuid.UUID, verified bool, at time.Time) (company.Company, error) {
	row, err := r.update(ctx, id, map[string]any{
		"is_verified": verified,
		"updated_at":  formatTime(at),
	})
	if err != nil {
		return company.Company{}, err
	}
	return row.toDomain(), nil
}

func (r *CompanyRepository) UpdateHiringRate(ctx context.Context, id uuid.UUID, rate int, at time.Time) error {
	_, err := r.update(ctx, id, map[string]any{
		"hiring_rate": rate,
		"updated_at":  formatTime(at),
	})
	return err
}

// update patches one employer and returns it, or ErrNotFound when no row
// matched.
func (r *CompanyRepository) update(ctx context.Context, id uuid.UUID, patch map[string]any) (employerRow, error) {
	var rows []employerRow
	if err := r.client.from(tableEmployers).Update(patch).Eq("id", id.String()).ExecuteWithContext(ctx, &rows); err != nil {
		return employerRow{}, fmt.Errorf("supabase update employer: %w", err)
	}
	if len(rows) == 0 {
		return employerRow{}, repository.ErrNotFound
	}
	return rows[0], nil
}
