package app

import (
	"time"

	"github.com/Mikayuko/projectbingsu/internal/platform/envutil"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	Version     string

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	CodeTTL        time.Duration
	CodeSweepEvery time.Duration

	MenuSeedPath string

	AdminEmail    string
	AdminPassword string
}

func LoadConfig(log *logger.Logger) Config {
	log.Info("Loading environment variables...")
	return Config{
		Port:        envutil.String("PORT", "8080"),
		ServiceName: envutil.String("SERVICE_NAME", "bingsu-api"),
		Environment: envutil.String("ENVIRONMENT", "development"),
		Version:     envutil.String("SERVICE_VERSION", "dev"),

		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,
		RefreshTokenTTL: time.Duration(envutil.Int("REFRESH_TOKEN_TTL", 86400)) * time.Second,

		CodeTTL:        envutil.Duration("MENU_CODE_TTL", 24*time.Hour),
		CodeSweepEvery: envutil.Duration("MENU_CODE_SWEEP_INTERVAL", time.Hour),

		MenuSeedPath: envutil.String("MENU_SEED_PATH", ""),

		AdminEmail:    envutil.String("ADMIN_EMAIL", ""),
		AdminPassword: envutil.String("ADMIN_PASSWORD", ""),
	}
}
