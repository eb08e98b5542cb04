package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"talent-admin/internal/config"
	"talent-admin/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// ApplicationName shows up in pg_stat_activity for every pooled connection.
const ApplicationName = "talent-admin"

// ErrClosed is returned by a Pool that was never opened or already closed.
var ErrClosed = errors.New("postgres: pool is closed")

// Pool adapts a pgx pool to database.DB. The same pool is exposed as a
// *sql.DB for the migration runner.
type Pool struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// DSN renders cfg as a postgres:// URL. sslmode defaults to disable.
func DSN(cfg config.DatabaseConfig) string {
	host := strings.TrimSpace(cfg.DBHost)
	port := strings.TrimSpace(cfg.DBPort)
	if port == "" {
		port = "5432"
	}
	sslmode := strings.TrimSpace(cfg.DBSSLMode)
	if sslmode == "" {
		sslmode = "disable"
	}

	q := url.Values{}
	q.Set("sslmode", sslmode)
	q.Set("application_name", ApplicationName)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(strings.TrimSpace(cfg.DBUser), cfg.DBPassword),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + strings.TrimSpace(cfg.DBName),
		RawQuery: q.Encode(),
	}
	return u.String()
}

func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	pcfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	applyPoolConfig(pcfg, cfg)

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	pingCtx, cancel := ctx, context.CancelFunc(func() {})
	if _, ok := ctx.Deadline(); !ok {
		pingCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
	}
	defer cancel()

	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping %s@%s/%s: %w", cfg.DBUser, cfg.DBHost, cfg.DBName, err)
	}

	return &Pool{pool: p, sqlDB: stdlib.OpenDBFromPool(p)}, nil
}

func applyPoolConfig(pcfg *pgxpool.Config, cfg config.DatabaseConfig) {
	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.PoolMaxConns > 0 {
		pcfg.MaxConns = cfg.PoolMaxConns
	}
	if cfg.PoolMinConns > 0 {
		pcfg.MinConns = cfg.PoolMinConns
	}
	if cfg.PoolMaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.PoolMaxConnLifetime
	}
	if cfg.PoolMaxConnIdleTime > 0 {
		pcfg.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	}
	if cfg.PoolHealthCheckPeriod > 0 {
		pcfg.HealthCheckPeriod = cfg.PoolHealthCheckPeriod
	}
}

func (p *Pool) open() bool { return p != nil && p.pool != nil }

func (p *Pool) Ping(ctx context.Context) error {
	if !p.open() {
		return ErrClosed
	}
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() error {
	if !p.open() {
		return nil
	}
	var err error
	if p.sqlDB != nil {
		err = p.sqlDB.Close()
	}
	p.pool.Close()
	p.pool = nil
	return err
}

func (p *Pool) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if !p.open() {
		return 0, ErrClosed
	}
	return execOn(ctx, p.pool, query, args...)
}

func (p *Pool) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	if !p.open() {
		return nil, ErrClosed
	}
	return queryOn(ctx, p.pool, query, args...)
}

func (p *Pool) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if !p.open() {
		return errRow{err: ErrClosed}
	}
	return row{r: p.pool.QueryRow(ctx, query, args...)}
}

func (p *Pool) Begin(ctx context.Context) (database.Tx, error) {
	if !p.open() {
		return nil, ErrClosed
	}
	t, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return tx{t: t}, nil
}

func (p *Pool) SQLDB() *sql.DB {
	if p == nil {
		return nil
	}
	return p.sqlDB
}

// querier is the subset shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

func execOn(ctx context.Context, q querier, query string, args ...any) (int64, error) {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func queryOn(ctx context.Context, q querier, query string, args ...any) (database.Rows, error) {
	r, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type tx struct {
	t pgx.Tx
}

func (t tx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return execOn(ctx, t.t, query, args...)
}

func (t tx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return queryOn(ctx, t.t, query, args...)
}

func (t tx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return row{r: t.t.QueryRow(ctx, query, args...)}
}

func (t tx) Commit(ctx context.Context) error { return t.t.Commit(ctx) }

func (t tx) Rollback(ctx context.Context) error { return t.t.Rollback(ctx) }

type row struct {
	r pgx.Row
}

func (r row) Scan(dest ...any) error {
	err := r.r.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return database.ErrNoRows
	}
	return err
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
