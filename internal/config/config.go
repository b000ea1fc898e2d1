package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	DB       DatabaseConfig
	Importer ImporterConfig
	Search   SearchConfig
	API      APIConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Path string
}

type ImporterConfig struct {
	Enabled    bool
	SeedPath   string
	Workers    int
	BufferSize int
}

// SearchConfig bounds the listings radius search.
type SearchConfig struct {
	DefaultRadiusKm float64
	MaxRadiusKm     float64
}

type APIConfig struct {
	RateLimitRPS int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/ecoplate.db"),
		},
		Importer: ImporterConfig{
			Enabled:    getEnvBool("IMPORT_ENABLED", true),
			SeedPath:   getEnv("SEED_PATH", "./data/seeds/listings.json"),
			Workers:    getEnvInt("IMPORT_WORKERS", 2),
			BufferSize: getEnvInt("IMPORT_BUFFER", 50),
		},
		Search: SearchConfig{
			DefaultRadiusKm: getEnvFloat("DEFAULT_RADIUS_KM", 5),
			MaxRadiusKm:     getEnvFloat("MAX_RADIUS_KM", 50),
		},
		API: APIConfig{
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Importer.Workers < 1 {
		return fmt.Errorf("import workers must be at least 1")
	}

	if c.Search.DefaultRadiusKm <= 0 {
		return fmt.Errorf("default search radius must be positive")
	}
	if c.Search.MaxRadiusKm < c.Search.DefaultRadiusKm {
		return fmt.Errorf("max search radius %v below default %v", c.Search.MaxRadiusKm, c.Search.DefaultRadiusKm)
	}

	if c.API.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}
