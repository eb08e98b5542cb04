package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"talent-admin/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// CheckColumns fails with ErrSchemaMismatch naming every table.column in want
// that the current schema lacks.
func CheckColumns(ctx context.Context, db database.DB, want map[string][]string) error {
	tables := make([]string, 0, len(want))
	for t := range want {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	rows, err := db.Query(ctx,
		`SELECT table_name, column_name FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ANY($1)`,
		tables,
	)
	if err != nil {
		return fmt.Errorf("read columns: %w", err)
	}
	defer rows.Close()

	have := map[string]struct{}{}
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return err
		}
		have[table+"."+column] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return missingColumns(tables, want, have)
}

func missingColumns(tables []string, want map[string][]string, have map[string]struct{}) error {
	var missing []string
	for _, t := range tables {
		for _, c := range want[t] {
			if _, ok := have[t+"."+c]; !ok {
				missing = append(missing, t+"."+c)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing %s (run adminctl migrate)", ErrSchemaMismatch, strings.Join(missing, ", "))
}
