package supabase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"talent-admin/internal/repository"

	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
)

// StatsRepository counts rows with exact-count HEAD requests.
type StatsRepository struct {
	client *Client
}

func NewStatsRepository(client *Client) *StatsRepository {
	return &StatsRepository{client: client}
}

func (r *StatsRepository) Count(ctx context.Context, q repository.CountQuery) (int, error) {
	if !q.Table.Valid() {
		return 0, fmt.Errorf("count: unknown table %q", q.Table)
	}
	return r.client.count(ctx, "count "+string(q.Table), func() *postgrest.SelectRequestBuilder {
		b := r.client.from(string(q.Table)).Select("id")
		if q.Verified != nil {
			b.Eq("is_verified", strconv.FormatBool(*q.Verified))
		}
		if q.Status != "" {
			b.Eq("status", q.Status)
		}
		if q.CreatedBefore != nil {
			b.Lt("created_at", formatTime(*q.CreatedBefore))
		}
		return b
	})
}

func (r *StatsRepository) ListJobCreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	type createdRow struct {
		ID        string    `json:"id"`
		CreatedAt timestamp `json:"created_at"`
	}
	rows, err := selectAll[createdRow](ctx, r.client, "list job timestamps", func() *postgrest.SelectRequestBuilder {
		b := newestFirst(r.client.from(tableJobs).Select("id", "created_at"))
		b.Gte("created_at", formatTime(since))
		return b
	})
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.CreatedAt.Time)
	}
	return out, nil
}
