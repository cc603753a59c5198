package app

import (
	"context"
	"fmt"

	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/logging"
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/storage"
)

// App connects the database and object storage and wires repositories into
// services.
func App(ctx context.Context, cfg *config.Config, log logging.Logger) (*database.DB, *repository.Repository, *service.Service, error) {
	// connection DB
	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		db.CloseDB()
		return nil, nil, nil, fmt.Errorf("не удалось инициализировать MinIO: %w", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, log)

	return db, repo, services, nil
}
