package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "autoforge-api", cfg.AppName)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(52428800), cfg.MaxFileSize)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.False(t, cfg.MailSendEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LOG_LEVEL", "WARN")

	cfg := Load()

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, int64(1024), cfg.MaxFileSize)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("DEBUG_METRICS_ENABLED", "maybe")
	t.Setenv("DB_MAX_CONNS", "lots")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.DebugMetricsEnabled)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:1/d?sslmode=disable", cfg.PostgresDSN())
}

func TestValidate_JWTSecret(t *testing.T) {
	cfg := Load()
	assert.NoError(t, cfg.Validate(), "development accepts the default secret")

	cfg.Env = "production"
	assert.ErrorIs(t, cfg.Validate(), ErrInsecureJWTSecret)
	cfg.JWTSecret = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInsecureJWTSecret)

	cfg.JWTSecret = "s3cr3t-from-vault"
	assert.NoError(t, cfg.Validate())
}

func TestTrustedProxyList(t *testing.T) {
	assert.Empty(t, Load().TrustedProxyList())

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.1")
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, Load().TrustedProxyList())
}
