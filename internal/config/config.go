package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Scraper  ScraperConfig
}

type ServerConfig struct {
	Port int
	// RequestsPerSecond and Burst bound each client IP on the HTTP API.
	RequestsPerSecond float64
	Burst             int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ScraperConfig struct {
	// RateLimitSeconds is the window of the process-wide outbound fetch
	// throttle for single-product extraction.
	RateLimitSeconds int
	CacheTTLMinutes  int
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnvInt("PORT", 8080),
			RequestsPerSecond: getEnvFloat("API_RATE_LIMIT_RPS", 5),
			Burst:             getEnvInt("API_RATE_LIMIT_BURST", 10),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "wishwell"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Scraper: ScraperConfig{
			RateLimitSeconds: getEnvInt("SCRAPER_RATE_LIMIT", 60),
			CacheTTLMinutes:  getEnvInt("SCRAPER_CACHE_TTL", 15),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Scraper.RateLimitSeconds < 1 {
		return fmt.Errorf("scraper rate limit must be at least 1 second")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
