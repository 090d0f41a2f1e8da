package main

import (
	"context"
	"fmt"
	"log"

	"dealflow/internal/adapter/persistence/repository"
	"dealflow/internal/infrastructure/config"
	"dealflow/internal/infrastructure/database"
	"dealflow/internal/usecase/interfaces"
)

type stores struct {
	links    interfaces.IPaymentLinkRepository
	attempts interfaces.IPaymentAttemptRepository
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.StorageDriver {
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return stores{}, err
		}
		return stores{
			links:    repository.NewPaymentLinkDynamoRepository(ddb, cfg.AWS.LinksTable),
			attempts: repository.NewPaymentAttemptDynamoRepository(ddb, cfg.AWS.AttemptsTable),
		}, nil
	case config.StoragePostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return stores{}, err
		}
		if err := repository.AutoMigrate(db); err != nil {
			return stores{}, fmt.Errorf("auto migrate: %w", err)
		}
		return stores{
			links:    repository.NewPaymentLinkGormRepository(db),
			attempts: repository.NewPaymentAttemptGormRepository(db),
		}, nil
	case config.StorageMemory:
		log.Printf("[api][stores] memory storage enabled, data is lost on restart")
		return stores{
			links:    repository.NewPaymentLinkMemoryRepository(),
			attempts: repository.NewPaymentAttemptMemoryRepository(),
		}, nil
	}
	return stores{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
