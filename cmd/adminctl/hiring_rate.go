package main

import (
	"errors"
	"fmt"

	"talent-admin/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newHiringRateCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hiring-rate",
		Short: "Maintain company hiring rates",
	}
	cmd.AddCommand(newHiringRateRecalcCmd(root))
	return cmd
}

func newHiringRateRecalcCmd(root *rootOptions) *cobra.Command {
	var (
		companyID string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Recompute hiring rates from current application statuses",
		Args:  cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			if all == (companyID != "") {
				return errors.New("pass exactly one of --company or --all")
			}
			if companyID != "" {
				if _, err := uuid.Parse(companyID); err != nil {
					return fmt.Errorf("invalid --company: %w", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := openContainer()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx, cancel := root.context(cmd.Context())
			defer cancel()

			var ids []uuid.UUID
			if all {
				companies, err := c.Companies.ListCompanies(ctx)
				if err != nil {
					return err
				}
				for _, co := range companies {
					ids = append(ids, co.ID)
				}
			} else {
				ids = append(ids, uuid.MustParse(companyID))
			}

			out := cmd.OutOrStdout()
			for _, id := range ids {
				snap, err := c.HiringRate.RecalculateCompany(ctx, id)
				switch {
				case errors.Is(err, usecase.ErrNoCompanyJobs):
					fmt.Fprintf(out, "%s skipped (no jobs)\n", id)
				case err != nil:
					return fmt.Errorf("company %s: %w", id, err)
				default:
					fmt.Fprintf(out, "%s hired=%d total=%d rate=%d\n", id, snap.Hired, snap.Total, snap.Rate())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "company id to recalculate")
	cmd.Flags().BoolVar(&all, "all", false, "recalculate every company")
	return cmd
}
