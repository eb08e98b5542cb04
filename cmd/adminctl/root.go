package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"talent-admin/internal/app"
	"talent-admin/internal/config"
	"talent-admin/internal/database"
	dbpostgres "talent-admin/internal/database/postgres"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "adminctl",
		Short:         "Operate the talent admin backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if err := godotenv.Load(opts.envFile); err != nil && cmd.Flags().Changed("env-file") {
				log.Printf("could not load %s: %v", opts.envFile, err)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading configuration")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall command timeout")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newSeedCmd(opts),
		newStatsCmd(opts),
		newHiringRateCmd(opts),
	)
	return cmd
}

func (o *rootOptions) context(parent context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, o.timeout)
}

// connectPostgres opens the SQL store directly; migrate and seed only make
// sense against the postgres backend.
func connectPostgres(ctx context.Context) (database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Backend != config.BackendPostgres {
		return nil, fmt.Errorf("command requires DATA_BACKEND=%s, got %s", config.BackendPostgres, cfg.Backend)
	}
	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func openContainer() (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.NewContainer(cfg, log.Default())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
