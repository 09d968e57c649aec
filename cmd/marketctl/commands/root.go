// Package commands implements marketctl, the operator CLI for migrations,
// category seeding and password policy checks.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghuser/simplemarket/pkg/config"
	"github.com/ghuser/simplemarket/pkg/database"
	"github.com/ghuser/simplemarket/pkg/logger"
)

var (
	databaseURL string
	logLevel    string
)

// Execute runs the root command with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "marketctl",
		Short:         "SimpleMarket operator commands",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&databaseURL, "database-url", "", "postgres URL (default DATABASE_URL)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(migrateCmd(), seedCategoriesCmd(), checkPasswordCmd())
	return root
}

// openDatabase resolves the database URL from the flag or the environment and
// opens the shared pool.
func openDatabase(ctx context.Context, cmd *cobra.Command) (*database.Database, logger.Logger, error) {
	log := logger.NewWithWriter(cmd.ErrOrStderr(), logLevel)

	url := databaseURL
	if url == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		url = cfg.DatabaseURL
	}

	db, err := database.NewPool(ctx, url, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return db, log, nil
}
