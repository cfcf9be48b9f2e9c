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

	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Log          LogConfig
	Enlistment   EnlistmentConfig
	CatalogCache CatalogCacheConfig
	Forms        FormsConfig
	Jobs         JobsConfig
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

// JWTConfig verifies portal-issued bearer tokens. Tokens are never issued here.
type JWTConfig struct {
	Secret string
	Issuer string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// EnlistmentConfig tunes admission control for enlistment sessions.
type EnlistmentConfig struct {
	IrregularCap        int
	DefaultCeiling      int
	SessionTTL          time.Duration
	DefaultSeatCapacity int
	// SeedCeilings is used when the curriculum ceiling table is empty,
	// written as "semester:year=units" pairs.
	SeedCeilings string
}

// CatalogCacheConfig controls Redis caching of the offering catalog.
type CatalogCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// FormsConfig signs registration form download links.
type FormsConfig struct {
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

// JobsConfig sizes the background worker queue.
type JobsConfig struct {
	Workers int
	Retries int
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

	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
		Issuer: v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Enlistment = EnlistmentConfig{
		IrregularCap:        positiveInt(v.GetInt("ENLISTMENT_IRREGULAR_CAP"), 18),
		DefaultCeiling:      positiveInt(v.GetInt("ENLISTMENT_DEFAULT_CEILING"), 24),
		SessionTTL:          parseDuration(v.GetString("ENLISTMENT_SESSION_TTL"), 30*time.Minute),
		DefaultSeatCapacity: positiveInt(v.GetInt("ENLISTMENT_DEFAULT_SEAT_CAPACITY"), 40),
		SeedCeilings:        v.GetString("ENLISTMENT_SEED_CEILINGS"),
	}

	cfg.CatalogCache = CatalogCacheConfig{
		Enabled: v.GetBool("CATALOG_CACHE_ENABLED"),
		TTL:     parseDuration(v.GetString("CATALOG_CACHE_TTL"), 2*time.Minute),
	}

	cfg.Forms = FormsConfig{
		SignedURLSecret: v.GetString("FORMS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("FORMS_SIGNED_URL_TTL"), 15*time.Minute),
	}

	cfg.Jobs = JobsConfig{
		Workers: positiveInt(v.GetInt("JOBS_WORKERS"), 1),
		Retries: v.GetInt("JOBS_RETRIES"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "student_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENLISTMENT_IRREGULAR_CAP", 18)
	v.SetDefault("ENLISTMENT_DEFAULT_CEILING", 24)
	v.SetDefault("ENLISTMENT_SESSION_TTL", "30m")
	v.SetDefault("ENLISTMENT_DEFAULT_SEAT_CAPACITY", 40)
	v.SetDefault("ENLISTMENT_SEED_CEILINGS", "1:1=21,2:1=22,2:2=24,2:3=12,2:4=6")

	v.SetDefault("CATALOG_CACHE_ENABLED", true)
	v.SetDefault("CATALOG_CACHE_TTL", "2m")

	v.SetDefault("FORMS_SIGNED_URL_SECRET", "dev_forms_secret")
	v.SetDefault("FORMS_SIGNED_URL_TTL", "15m")

	v.SetDefault("JOBS_WORKERS", 1)
	v.SetDefault("JOBS_RETRIES", 3)
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

func positiveInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
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
