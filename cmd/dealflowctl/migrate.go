package main

import (
	"context"
	"fmt"

	"dealflow/internal/adapter/persistence/repository"
	"dealflow/internal/infrastructure/config"
	"dealflow/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the storage schema for the configured STORAGE_DRIVER",
		Long: `Create the payment link and attempt tables.

dynamodb: creates both tables with their indexes; existing tables are kept.
postgres: runs the gorm auto migration against DATABASE_URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), cmd, config.Read())
		},
	}
}

func runMigrate(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	switch cfg.StorageDriver {
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return fmt.Errorf("connect dynamodb: %w", err)
		}
		if err := database.CreatePaymentTables(ctx, ddb, cfg.AWS.LinksTable, cfg.AWS.AttemptsTable); err != nil {
			return err
		}
		fmt.Fprintf(out, "dynamodb tables ready: %s, %s\n", cfg.AWS.LinksTable, cfg.AWS.AttemptsTable)
	case config.StoragePostgres:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
		}
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		if err := repository.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		fmt.Fprintln(out, "postgres schema ready")
	case config.StorageMemory:
		fmt.Fprintln(out, "memory storage needs no migration")
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return nil
}
