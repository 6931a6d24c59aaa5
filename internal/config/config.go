package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port string }
type DBCfg struct{ DSN string }
type RedisCfg struct{ Addr string }

type SecurityCfg struct {
	JWTSecret       []byte
	JWTIssuer       string
	RateLimitPerMin int
}

type QueryCfg struct {
	MaxPageSize int
}

type Cfg struct {
	App   AppCfg
	DB    DBCfg
	Redis RedisCfg
	Sec   SecurityCfg
	Query QueryCfg
}

// Local reports whether the service runs on a developer machine.
func (c Cfg) Local() bool { return c.App.Env == "local" }

// Load reads configuration from .env (if present) and the process
// environment. Missing required settings are fatal.
func Load() Cfg {
	cfg, err := Read(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

// Read is Load without the fatal exit.
func Read(envFile string) (Cfg, error) {
	if envFile != "" {
		// a missing file is fine; real deployments use the environment
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Cfg{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("RATE_LIMIT_PER_MIN", 300)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("PAGE_MAX_SIZE", 100)
	v.SetDefault("TZ", "UTC")

	if tz := v.GetString("TZ"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			time.Local = loc
			os.Setenv("TZ", tz)
		}
	}

	cfg := Cfg{
		App: AppCfg{
			Env:  strings.ToLower(v.GetString("APP_ENV")),
			Port: v.GetString("APP_PORT"),
		},
		DB:    DBCfg{DSN: v.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: v.GetString("REDIS_ADDR")},
		Sec: SecurityCfg{
			JWTSecret:       []byte(strings.TrimSpace(v.GetString("JWT_SECRET"))),
			JWTIssuer:       strings.TrimSpace(v.GetString("JWT_ISSUER")),
			RateLimitPerMin: v.GetInt("RATE_LIMIT_PER_MIN"),
		},
		Query: QueryCfg{MaxPageSize: v.GetInt("PAGE_MAX_SIZE")},
	}

	if cfg.DB.DSN == "" {
		return cfg, fmt.Errorf("DB_DSN is required")
	}
	if len(cfg.Sec.JWTSecret) == 0 {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Query.MaxPageSize < 1 {
		return cfg, fmt.Errorf("PAGE_MAX_SIZE must be positive, got %d", cfg.Query.MaxPageSize)
	}
	return cfg, nil
}
