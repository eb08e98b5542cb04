package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print freshly computed dashboard statistics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := openContainer()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx, cancel := root.context(cmd.Context())
			defer cancel()

			stats, err := c.Dashboard.Compute(ctx, time.Now())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
}
