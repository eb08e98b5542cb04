package supabase

import (
	"context"
	"fmt"
	"sort"

	"talent-admin/internal/domain/application"
	"talent-admin/internal/repository"

	"github.com/google/uuid"
	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
)

// applicationColumns embeds the job and applicant of each application.
var applicationColumns = []string{
	"*",
	"jobs(id,job_title,company,company_id)",
	"freelancers(id,email,professional_title)",
}

type ApplicationRepository struct {
	client *Client
}

func NewApplicationRepository(client *Client) *ApplicationRepository {
	return &ApplicationRepository{client: client}
}

func (r *ApplicationRepository) details() *postgrest.SelectRequestBuilder {
	return newestFirst(r.client.from(tableApplications).Select(applicationColumns...))
}

func (r *ApplicationRepository) ListApplications(ctx context.Context) ([]application.Detail, error) {
	rows, err := selectAll[applicationRow](ctx, r.client, "list applications", r.details)
	if err != nil {
		return nil, err
	}
	return toDetails(rows), nil
}

func (r *ApplicationRepository) ListApplicationsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]application.Detail, error) {
	if len(jobIDs) == 0 {
		return []application.Detail{}, nil
	}
	rows, err := selectIn[applicationRow](ctx, r.client, "list job applications", "job_id", jobIDs, r.details)
	if err != nil {
		return nil, err
	}
	out := toDetails(rows)
	if len(jobIDs) > inChunkSize {
		// chunks are each ordered; merge them
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out, nil
}

func (r *ApplicationRepository) GetApplicationByID(ctx context.Context, id uuid.UUID) (application.Detail, error) {
	var rows []applicationRow
	b := r.details()
	b.Eq("id", id.String())
	if err := b.ExecuteWithContext(ctx, &rows); err != nil {
		return application.Detail{}, fmt.Errorf("supabase get application: %w", err)
	}
	if len(rows) == 0 {
		return application.Detail{}, repository.ErrNotFound
	}
	return rows[0].toDetail(), nil
}

func (r *ApplicationRepository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Detail, error) {
	var rows []applicationRow
	patch := map[string]any{"status": string(status)}
	if err := r.client.from(tableApplications).Update(patch).Eq("id", id.String()).ExecuteWithContext(ctx, &rows); err != nil {
		return application.Detail{}, fmt.Errorf("supabase update application: %w", err)
	}
	if len(rows) == 0 {
		return application.Detail{}, repository.ErrNotFound
	}
	return r.GetApplicationByID(ctx, id)
}

func (r *ApplicationRepository) ListStatusesByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]application.Status, error) {
	if len(jobIDs) == 0 {
		return []application.Status{}, nil
	}
	type statusRow struct {
		Status *string `json:"status"`
	}
	rows, err := selectIn[statusRow](ctx, r.client, "list application statuses", "job_id", jobIDs, func() *postgrest.SelectRequestBuilder {
		return byID(r.client.from(tableApplications).Select("id", "status"))
	})
	if err != nil {
		return nil, err
	}
	out := make([]application.Status, 0, len(rows))
	for _, row := range rows {
		out = append(out, application.Normalize(row.Status))
	}
	return out, nil
}

func toDetails(rows []applicationRow) []application.Detail {
	out := make([]application.Detail, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDetail())
	}
	return out
}
