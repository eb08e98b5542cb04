package supabase

import (
	"context"
	"fmt"

	"talent-admin/internal/domain/freelancer"
	"talent-admin/internal/repository"

	"github.com/google/uuid"
	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
)

type FreelancerRepository struct {
	client *Client
}

func NewFreelancerRepository(client *Client) *FreelancerRepository {
	return &FreelancerRepository{client: client}
}

func (r *FreelancerRepository) ListFreelancers(ctx context.Context) ([]freelancer.Freelancer, error) {
	rows, err := selectAll[freelancerRow](ctx, r.client, "list freelancers", func() *postgrest.SelectRequestBuilder {
		return newestFirst(r.client.from(tableFreelancers).Select("*"))
	})
	if err != nil {
		return nil, err
	}
	out := make([]freelancer.Freelancer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FreelancerRepository) GetFreelancerByID(ctx context.Context, id uuid.UUID) (freelancer.Freelancer, error) {
	var rows []freelancerRow
	if err := r.client.from(tableFreelancers).Select("*").Eq("id", id.String()).ExecuteWithContext(ctx, &rows); err != nil {
		return freelancer.Freelancer{}, fmt.Errorf("supabase get freelancer: %w", err)
	}
	if len(rows) == 0 {
		return freelancer.Freelancer{}, repository.ErrNotFound
	}
	return rows[0].toDomain(), nil
}
