package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"talent-admin/internal/config"

	"github.com/google/uuid"
	supabasego "github.com/nedpals/supabase-go"
	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
)

const (
	tableEmployers    = "employers"
	tableJobs         = "jobs"
	tableApplications = "applications"
	tableFreelancers  = "freelancers"
)

const (
	// defaultPageSize matches the hosted PostgREST max-rows and must not
	// exceed the server setting.
	defaultPageSize = 1000
	// inChunkSize bounds the ids sent in one in.(...) filter.
	inChunkSize = 100
)

// Client wraps the Supabase SDK client shared by the REST repositories and
// the authenticator.
type Client struct {
	sb       *supabasego.Client
	pageSize int
}

func NewClient(cfg config.SupabaseConfig) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	key := strings.TrimSpace(cfg.Key)
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided via SUPABASE_URL / SUPABASE_KEY")
	}
	return &Client{sb: supabasego.CreateClient(url, key), pageSize: defaultPageSize}, nil
}

func (c *Client) from(table string) *postgrest.RequestBuilder {
	return c.sb.DB.From(table)
}

// count returns the exact number of rows matched by query, read from the
// Content-Range of a HEAD request.
func (c *Client) count(ctx context.Context, op string, query func() *postgrest.SelectRequestBuilder) (int, error) {
	var n int
	if err := query().Count().ExecuteWithContext(ctx, &n); err != nil {
		return 0, fmt.Errorf("supabase %s: %w", op, err)
	}
	return n, nil
}

// selectAll reads every row matched by query one page at a time. query must
// build a fresh request with a total order on every call.
func selectAll[T any](ctx context.Context, c *Client, op string, query func() *postgrest.SelectRequestBuilder) ([]T, error) {
	size := c.pageSize
	if size <= 0 {
		size = defaultPageSize
	}
	out := make([]T, 0)
	for offset := 0; ; offset += size {
		var page []T
		err := query().LimitWithOffset(size, offset).ExecuteWithContext(ctx, &page)
		if offset > 0 && rangeNotSatisfiable(err) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("supabase %s: %w", op, err)
		}
		out = append(out, page...)
		if len(page) < size {
			break
		}
	}
	return out, nil
}

// selectIn runs selectAll once per chunk of ids, filtering column by the
// chunk, and concatenates the results.
func selectIn[T any](ctx context.Context, c *Client, op, column string, ids []uuid.UUID, query func() *postgrest.SelectRequestBuilder) ([]T, error) {
	all := uuidStrings(ids)
	out := make([]T, 0)
	for start := 0; start < len(all); start += inChunkSize {
		chunk := all[start:min(start+inChunkSize, len(all))]
		rows, err := selectAll[T](ctx, c, op, func() *postgrest.SelectRequestBuilder {
			b := query()
			b.In(column, chunk)
			return b
		})
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// newestFirst orders by created_at descending with id as the tiebreak so
// pages never overlap.
func newestFirst(b *postgrest.SelectRequestBuilder) *postgrest.SelectRequestBuilder {
	return b.OrderBy("created_at", "desc,id.desc")
}

// byID gives a stable order where recency does not matter.
func byID(b *postgrest.SelectRequestBuilder) *postgrest.SelectRequestBuilder {
	return b.OrderBy("id", "asc")
}

func rangeNotSatisfiable(err error) bool {
	var reqErr *postgrest.RequestError
	return errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusRequestedRangeNotSatisfiable
}

func uuidStrings(ids []uuid.UUID) []string {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id.String())
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
