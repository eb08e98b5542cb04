package main

import (
	"fmt"
	"log"

	"talent-admin/internal/database/migration"

	"github.com/spf13/cobra"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	var (
		dir    string
		status bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := root.context(cmd.Context())
			defer cancel()

			db, err := connectPostgres(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			r := migration.Runner{Dir: dir, Logger: log.Default()}
			out := cmd.OutOrStdout()

			if status {
				states, err := r.Status(ctx, db.SQLDB())
				if err != nil {
					return err
				}
				for _, s := range states {
					applied := "pending"
					if s.AppliedAt != nil {
						applied = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(out, "V%-4d %-40s %s\n", s.Version, s.Name, applied)
				}
				return nil
			}

			done, err := r.Run(ctx, db.SQLDB())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "applied %d migration(s)\n", len(done))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory holding V<n>__<name>.sql files")
	cmd.Flags().BoolVar(&status, "status", false, "list migrations and their applied time without applying")
	return cmd
}
