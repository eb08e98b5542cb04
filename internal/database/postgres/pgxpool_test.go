package postgres

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"talent-admin/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     "db.internal",
		DBUser:     "admin",
		DBPassword: "p@ss word",
		DBName:     "talent",
	})

	u, err := url.Parse(dsn)
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	if u.Host != "db.internal:5432" || u.Path != "/talent" {
		t.Fatalf("unexpected host/path: %s %s", u.Host, u.Path)
	}
	if pw, _ := u.User.Password(); pw != "p@ss word" {
		t.Fatalf("password not round-tripped: %q", pw)
	}
	q := u.Query()
	if q.Get("sslmode") != "disable" || q.Get("application_name") != ApplicationName {
		t.Fatalf("unexpected query: %v", q)
	}
}

func TestPool_ClosedReturnsErrClosed(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	if err := p.Ping(ctx); !errors.Is(err, ErrClosed) {
		t.Fatalf("ping: %v", err)
	}
	if _, err := p.Exec(ctx, "SELECT 1"); !errors.Is(err, ErrClosed) {
		t.Fatalf("exec: %v", err)
	}
	var n int
	if err := p.QueryRow(ctx, "SELECT 1").Scan(&n); !errors.Is(err, ErrClosed) {
		t.Fatalf("query row: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close on nil pool: %v", err)
	}
}
