// Package bootstrap builds the driver-selected infrastructure shared by the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/config"
	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
	"github.com/oksasatya/autoforge-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/autoforge-api/internal/infrastructure/postgres"
	"github.com/oksasatya/autoforge-api/internal/infrastructure/storage"
)

const modelsPrefix = "models"

// Truncater is implemented by stores that can be wiped by the seed command.
type Truncater interface {
	Truncate(ctx context.Context) error
}

// OpenStore selects the store by STORE_DRIVER. Postgres migrations run first;
// the pool itself connects lazily on first use.
func OpenStore(cfg *config.Config, logger *logrus.Logger) (repository.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	case "postgres", "":
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		db := pginfra.NewManager(cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife, logger)
		return pginfra.NewStore(db), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// OpenModelStorage selects the upload backend by STORAGE_DRIVER. The returned
// close func releases client resources.
func OpenModelStorage(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (application.ModelStorage, func(), error) {
	noop := func() {}
	switch cfg.StorageDriver {
	case "local", "":
		s, err := storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, noop, err
		}
		logger.Infof("storing models in %s", cfg.UploadDir)
		return s, noop, nil
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, noop, fmt.Errorf("gcs client: %w", err)
		}
		s, err := storage.NewGCS(client, cfg.GCSBucket, modelsPrefix)
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		logger.Infof("using gcs bucket %s", cfg.GCSBucket)
		return s, func() { _ = client.Close() }, nil
	case "s3":
		s, err := storage.NewS3(ctx, storage.S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Profile:  cfg.AWSProfile,
			Prefix:   modelsPrefix,
		})
		if err != nil {
			return nil, noop, err
		}
		logger.Infof("using s3 bucket %s (region %s)", cfg.S3Bucket, cfg.S3Region)
		return s, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
