package config

import (
	"errors"
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

	Catalog   CatalogConfig
	Generator GeneratorConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
}

// CatalogConfig locates the static course catalog loaded at startup.
type CatalogConfig struct {
	Path   string
	Format string
}

// GeneratorConfig tunes the schedule generation engine.
type GeneratorConfig struct {
	DefaultMaxResults  int
	MaxResultsLimit    int
	OverGenerateFactor int
	CacheEnabled       bool
	CacheTTL           time.Duration
	Timeout            time.Duration
}

type RedisConfig struct {
	Enabled  bool
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Catalog = CatalogConfig{
		Path:   v.GetString("CATALOG_PATH"),
		Format: v.GetString("CATALOG_FORMAT"),
	}

	cfg.Generator = GeneratorConfig{
		DefaultMaxResults:  v.GetInt("GENERATOR_DEFAULT_MAX_RESULTS"),
		MaxResultsLimit:    v.GetInt("GENERATOR_MAX_RESULTS_LIMIT"),
		OverGenerateFactor: v.GetInt("GENERATOR_OVERGENERATE_FACTOR"),
		CacheEnabled:       v.GetBool("GENERATOR_CACHE_ENABLED"),
		CacheTTL:           parseDuration(v.GetString("GENERATOR_CACHE_TTL"), 10*time.Minute),
		Timeout:            parseDuration(v.GetString("GENERATOR_TIMEOUT"), 5*time.Second),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
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

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("CATALOG_PATH", "./data/catalog.json")
	v.SetDefault("CATALOG_FORMAT", "")

	v.SetDefault("GENERATOR_DEFAULT_MAX_RESULTS", 100)
	v.SetDefault("GENERATOR_MAX_RESULTS_LIMIT", 500)
	v.SetDefault("GENERATOR_OVERGENERATE_FACTOR", 4)
	v.SetDefault("GENERATOR_CACHE_ENABLED", false)
	v.SetDefault("GENERATOR_CACHE_TTL", "10m")
	v.SetDefault("GENERATOR_TIMEOUT", "5s")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
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
