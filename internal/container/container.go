package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/config"
	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	store       repository.Store
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	modelStorage application.ModelStorage
	mailPub      application.EmailPublisher
	esClient     *elasticsearch.Client
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetStore(s repository.Store)  { store = s }
func GetStore() repository.Store   { return store }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetModelStorage(s application.ModelStorage)   { modelStorage = s }
func GetModelStorage() application.ModelStorage    { return modelStorage }
func SetMailPublisher(p application.EmailPublisher) { mailPub = p }
func GetMailPublisher() application.EmailPublisher  { return mailPub }
func SetES(c *elasticsearch.Client)                 { esClient = c }
func GetES() *elasticsearch.Client                  { return esClient }
