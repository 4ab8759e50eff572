package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/config"
	"github.com/oksasatya/autoforge-api/internal/bootstrap"
	"github.com/oksasatya/autoforge-api/internal/container"
	"github.com/oksasatya/autoforge-api/internal/interface/middleware"
	"github.com/oksasatya/autoforge-api/internal/router"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
	"github.com/oksasatya/autoforge-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	store, err := bootstrap.OpenStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	// Redis backs rate limiting only; without it the limiter lets everything through.
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb, 3*time.Second); err != nil {
			helpers.LogWarn(logger, "redis unreachable, rate limits fail open", err, logrus.Fields{"addr": cfg.RedisAddr})
		}
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	} else {
		logger.Warn("REDIS_ADDR not set; rate limiting disabled")
	}

	models, closeModels, err := bootstrap.OpenModelStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init model storage: %v", err)
	}
	defer closeModels()

	if len(cfg.ESAddrs()) > 0 {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.Fatalf("failed to init elasticsearch: %v", err)
		}
		container.SetES(es)
	}

	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq unavailable, welcome emails disabled", err, nil)
		} else {
			defer pub.Close()
			container.SetMailPublisher(pub)
		}
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetStore(store)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))
	container.SetModelStorage(models)

	// Gin engine and global middleware
	r := gin.New()
	if err := middleware.TrustProxies(r, cfg.TrustedProxyList()); err != nil {
		logger.Fatalf("invalid TRUSTED_PROXIES: %v", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled || cfg.IsDevelopment() {
		r.Use(gin.Logger())
	}
	if cfg.StorageDriver == "local" {
		r.Static(cfg.PublicBaseURL, cfg.UploadDir)
	}

	reg := router.NewRegistry(r)
	svc := router.InitModules(reg)
	reg.RegisterAll()

	if container.GetES() != nil {
		go func() {
			n, err := svc.Vehicles.Reindex(context.Background())
			if err != nil {
				helpers.LogWarn(logger, "initial reindex failed", err, nil)
				return
			}
			helpers.LogInfo(logger, "vehicles reindexed", logrus.Fields{"count": n})
		}()
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
