package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// lockKey is the pg advisory lock held while migrating.
const lockKey int64 = 582031447

var (
	ErrChecksumMismatch = errors.New("migration checksum mismatch")
	ErrDuplicateVersion = errors.New("duplicate migration version")
)

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Runner applies V<version>__<name>.sql files in version order. Files come
// from FS when set, otherwise from Dir on disk. Applied files are recorded
// with a checksum; editing one afterwards fails the next run.
type Runner struct {
	Dir    string
	FS     fs.FS
	Logger *log.Logger
}

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

// State is a migration file paired with its applied time, if any.
type State struct {
	Migration
	AppliedAt *time.Time
}

// Run applies every pending migration and returns the ones it applied. The
// whole run happens on one connection holding the advisory lock.
func (r Runner) Run(ctx context.Context, db *sql.DB) ([]Migration, error) {
	if db == nil {
		return nil, errors.New("migration: nil db")
	}
	migs, err := r.load()
	if err != nil {
		return nil, err
	}
	if len(migs) == 0 {
		r.logf("[Migration] nothing to apply dir=%s", r.Dir)
		return nil, nil
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return nil, fmt.Errorf("migration: lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	states, err := reconcile(ctx, conn, migs)
	if err != nil {
		return nil, err
	}

	var done []Migration
	for _, st := range states {
		if st.AppliedAt != nil {
			continue
		}
		start := time.Now()
		if err := apply(ctx, conn, st.Migration); err != nil {
			return done, err
		}
		r.logf("[Migration] applied version=%d name=%s duration=%s", st.Version, st.Name, time.Since(start))
		done = append(done, st.Migration)
	}
	return done, nil
}

// Status lists every migration file with its applied time.
func (r Runner) Status(ctx context.Context, db *sql.DB) ([]State, error) {
	if db == nil {
		return nil, errors.New("migration: nil db")
	}
	migs, err := r.load()
	if err != nil {
		return nil, err
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: acquire connection: %w", err)
	}
	defer conn.Close()
	return reconcile(ctx, conn, migs)
}

func (r Runner) load() ([]Migration, error) {
	fsys := r.FS
	if fsys == nil {
		dir, err := resolveDir(r.Dir)
		if err != nil {
			return nil, err
		}
		fsys = os.DirFS(dir)
	}
	return Load(fsys)
}

func (r Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

// resolveDir prefers ./migrations, then migrations next to the binary.
func resolveDir(dir string) (string, error) {
	if strings.TrimSpace(dir) != "" {
		return dir, nil
	}
	if st, err := os.Stat("migrations"); err == nil && st.IsDir() {
		return "migrations", nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "migrations"), nil
}

// Load reads the migration files at the root of fsys in version order.
// Other files are ignored; a missing root yields no migrations.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var migs []Migration
	for _, e := range entries {
		if e.IsDir() || !fileRe.MatchString(e.Name()) {
			continue
		}
		body, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		m, err := parse(e.Name(), body)
		if err != nil {
			return nil, err
		}
		migs = append(migs, m)
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("%w: %d (%s, %s)", ErrDuplicateVersion, migs[i].Version, migs[i-1].Filename, migs[i].Filename)
		}
	}
	return migs, nil
}

func parse(filename string, body []byte) (Migration, error) {
	m := fileRe.FindStringSubmatch(filename)
	if m == nil {
		return Migration{}, fmt.Errorf("not a migration file: %s", filename)
	}
	version, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Migration{}, fmt.Errorf("invalid migration version: %s", filename)
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return Migration{}, fmt.Errorf("empty migration file: %s", filename)
	}
	sum := sha256.Sum256([]byte(text))
	return Migration{
		Version:  version,
		Name:     m[2],
		Filename: filename,
		SQL:      text,
		Checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// reconcile pairs files with the schema_migrations ledger and rejects edited
// files.
func reconcile(ctx context.Context, conn *sql.Conn, migs []Migration) ([]State, error) {
	if _, err := conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		checksum TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return nil, fmt.Errorf("migration: ensure ledger: %w", err)
	}

	rows, err := conn.QueryContext(ctx, `SELECT version, checksum, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type ledgerRow struct {
		checksum  string
		appliedAt time.Time
	}
	ledger := map[int64]ledgerRow{}
	for rows.Next() {
		var (
			v   int64
			row ledgerRow
		)
		if err := rows.Scan(&v, &row.checksum, &row.appliedAt); err != nil {
			return nil, err
		}
		ledger[v] = row
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	states := make([]State, 0, len(migs))
	for _, m := range migs {
		st := State{Migration: m}
		if row, ok := ledger[m.Version]; ok {
			if row.checksum != m.Checksum {
				return nil, fmt.Errorf("%w: version=%d file=%s", ErrChecksumMismatch, m.Version, m.Filename)
			}
			at := row.appliedAt
			st.AppliedAt = &at
		}
		states = append(states, st)
	}
	return states, nil
}

func apply(ctx context.Context, conn *sql.Conn, m Migration) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply %s: %w", m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum, applied_at) VALUES ($1, $2, $3, $4)`,
		m.Version, m.Name, m.Checksum, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record %s: %w", m.Filename, err)
	}
	return tx.Commit()
}
