package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream UpstreamConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Cache    EventCacheConfig
	Mirror   MirrorConfig
	Palette  PaletteConfig
	Metrics  MetricsConfig
}

// UpstreamConfig points the portal at the SEES backend API.
type UpstreamConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Timezone string
}

// SessionConfig controls how bearer tokens are read into sessions.
type SessionConfig struct {
	JWTSecret string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// EventCacheConfig governs caching of upstream event lists.
type EventCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// MirrorConfig toggles the Postgres snapshot of upstream events used when the API is down.
type MirrorConfig struct {
	Enabled bool
	Workers int
	Retries int
}

// PaletteConfig points at an optional YAML category palette.
type PaletteConfig struct {
	File string
}

type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = UpstreamConfig{
		BaseURL:  strings.TrimRight(v.GetString("SEES_API_URL"), "/"),
		Timeout:  parseDuration(v.GetString("SEES_API_TIMEOUT"), 10*time.Second),
		Timezone: v.GetString("SEES_TIMEZONE"),
	}

	cfg.Session = SessionConfig{JWTSecret: v.GetString("SESSION_JWT_SECRET")}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = EventCacheConfig{
		Enabled: v.GetBool("ENABLE_EVENT_CACHE"),
		TTL:     parseDuration(v.GetString("EVENT_CACHE_TTL"), 2*time.Minute),
	}

	cfg.Mirror = MirrorConfig{
		Enabled: v.GetBool("ENABLE_EVENT_MIRROR"),
		Workers: v.GetInt("MIRROR_WORKERS"),
		Retries: v.GetInt("MIRROR_RETRIES"),
	}

	cfg.Palette = PaletteConfig{File: v.GetString("PALETTE_FILE")}
	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SEES_API_URL", "http://localhost:5000/api")
	v.SetDefault("SEES_API_TIMEOUT", "10s")
	v.SetDefault("SEES_TIMEZONE", "UTC")
	v.SetDefault("SESSION_JWT_SECRET", "")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "sees_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_EVENT_CACHE", false)
	v.SetDefault("EVENT_CACHE_TTL", "2m")

	v.SetDefault("ENABLE_EVENT_MIRROR", false)
	v.SetDefault("MIRROR_WORKERS", 1)
	v.SetDefault("MIRROR_RETRIES", 3)

	v.SetDefault("PALETTE_FILE", "")
	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
