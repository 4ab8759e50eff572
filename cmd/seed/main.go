package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/config"
	"github.com/oksasatya/autoforge-api/internal/bootstrap"
	"github.com/oksasatya/autoforge-api/internal/container"
	"github.com/oksasatya/autoforge-api/internal/router"
	"github.com/oksasatya/autoforge-api/internal/seed"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
	"github.com/oksasatya/autoforge-api/pkg/validation"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	validation.Init()
	ctx := context.Background()

	if cfg.StoreDriver == "memory" {
		logger.Warn("STORE_DRIVER=memory: seeded data disappears when this process exits")
	}
	store, err := bootstrap.OpenStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	if t, ok := store.(bootstrap.Truncater); ok {
		if err := t.Truncate(ctx); err != nil {
			logger.Fatalf("failed to clear existing data: %v", err)
		}
		logger.Info("cleared existing data")
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetStore(store)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))
	if len(cfg.ESAddrs()) > 0 {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.Fatalf("failed to init elasticsearch: %v", err)
		}
		container.SetES(es)
	}

	svc := router.BuildServices()
	sum, err := seed.Run(ctx, seed.Services{
		Auth:     svc.Auth,
		Brands:   svc.Brands,
		Vehicles: svc.Vehicles,
		Assets:   svc.Assets,
	}, logger)
	if err != nil {
		logger.Fatalf("seed failed: %v", err)
	}
	logger.WithFields(logrus.Fields{"email": "admin@autoforge.com", "password": "admin123"}).Info("admin credentials")
	logger.Infof("seeded %d users, %d brands, %d vehicles, %d assets", sum.Users, sum.Brands, sum.Vehicles, sum.Assets)
}
