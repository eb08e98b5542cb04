package supabase

import (
	"context"
	"fmt"
	"time"

	"talent-admin/internal/domain/job"
	"talent-admin/internal/repository"

	"github.com/google/uuid"
	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
)

type JobRepository struct {
	client *Client
}

func NewJobRepository(client *Client) *JobRepository {
	return &JobRepository{client: client}
}

func (r *JobRepository) ListJobs(ctx context.Context) ([]job.Job, error) {
	rows, err := selectAll[jobRow](ctx, r.client, "list jobs", func() *postgrest.SelectRequestBuilder {
		return newestFirst(r.client.from(tableJobs).Select("*"))
	})
	if err != nil {
		return nil, err
	}
	out := make([]job.Job, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *JobRepository) GetJobByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	var rows []jobRow
	if err := r.client.from(tableJobs).Select("*").Eq("id", id.String()).ExecuteWithContext(ctx, &rows); err != nil {
		return job.Job{}, fmt.Errorf("supabase get job: %w", err)
	}
	if len(rows) == 0 {
		return job.Job{}, repository.ErrNotFound
	}
	return rows[0].toDomain(), nil
}

func (r *JobRepository) UpdateJobStatus(ctx context.Context, id uuid.UUID, status job.Status, at time.Time) (job.Job, error) {
	patch := map[string]any{
		"status":     string(status),
		"updated_at": formatTime(at),
	}
	var rows []jobRow
	if err := r.client.from(tableJobs).Update(patch).Eq("id", id.String()).ExecuteWithContext(ctx, &rows); err != nil {
		return job.Job{}, fmt.Errorf("supabase update job: %w", err)
	}
	if len(rows) == 0 {
		return job.Job{}, repository.ErrNotFound
	}
	return rows[0].toDomain(), nil
}

func (r *JobRepository) ListJobIDsByCompany(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	type idRow struct {
		ID uuid.UUID `json:"id"`
	}
	rows, err := selectAll[idRow](ctx, r.client, "list company jobs", func() *postgrest.SelectRequestBuilder {
		b := byID(r.client.from(tableJobs).Select("id"))
		b.Eq("company_id", companyID.String())
		return b
	})
	if err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ID)
	}
	return out, nil
}
