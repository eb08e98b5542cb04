package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"talent-admin/internal/database"
)

type Table string

const (
	TableEmployers    Table = "employers"
	TableJobs         Table = "jobs"
	TableApplications Table = "applications"
	TableFreelancers  Table = "freelancers"
)

func (t Table) Valid() bool {
	switch t {
	case TableEmployers, TableJobs, TableApplications, TableFreelancers:
		return true
	default:
		return false
	}
}

// CountQuery filters a row count. Zero-valued fields do not filter.
type CountQuery struct {
	Table         Table
	Verified      *bool
	Status        string
	CreatedBefore *time.Time
}

type StatsRepository interface {
	Count(ctx context.Context, q CountQuery) (int, error)
	ListJobCreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type PostgresStatsRepository struct {
	db database.DB
}

func NewPostgresStatsRepository(db database.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func buildCountSQL(q CountQuery) (string, []any, error) {
	if !q.Table.Valid() {
		return "", nil, fmt.Errorf("count: unknown table %q", q.Table)
	}
	var (
		where []string
		args  []any
	)
	if q.Verified != nil {
		args = append(args, *q.Verified)
		where = append(where, fmt.Sprintf("is_verified = $%d", len(args)))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.CreatedBefore != nil {
		args = append(args, *q.CreatedBefore)
		where = append(where, fmt.Sprintf("created_at < $%d", len(args)))
	}

	query := `SELECT COUNT(1) FROM ` + string(q.Table)
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	return query, args, nil
}

func (r *PostgresStatsRepository) Count(ctx context.Context, q CountQuery) (int, error) {
	query, args, err := buildCountSQL(q)
	if err != nil {
		return 0, err
	}
	var c int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresStatsRepository) ListJobCreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `SELECT created_at FROM jobs WHERE created_at >= $1`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]time.Time, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
