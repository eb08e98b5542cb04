package main

import (
	"fmt"
	"log"

	"talent-admin/internal/database/seeder"

	"github.com/spf13/cobra"
)

func newSeedCmd(root *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture file into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixtures, err := seeder.LoadFixtures(file)
			if err != nil {
				return err
			}

			ctx, cancel := root.context(cmd.Context())
			defer cancel()

			db, err := connectPostgres(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := seeder.NewLoader(db, log.Default()).Apply(ctx, fixtures); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded employers=%d jobs=%d freelancers=%d applications=%d\n",
				len(fixtures.Employers), len(fixtures.Jobs), len(fixtures.Freelancers), len(fixtures.Applications))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture file (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
