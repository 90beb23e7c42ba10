// Package config provides configuration management for the rebalancer
// backend. It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	MarketData MarketDataConfig
	Scheduler  SchedulerConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig holds Postgres configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

// RedisConfig holds the optional quote cache configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// MarketDataConfig holds quote provider configuration
type MarketDataConfig struct {
	GlobalBaseURL string
	KRXBaseURL    string
	FXBaseURL     string
	CacheTTLSecs  int
}

// SchedulerConfig holds the price refresh scheduler configuration
type SchedulerConfig struct {
	Enabled     bool
	RefreshSpec string // cron expression
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// LoadConfig reads configuration from the environment, consulting a .env
// file when present
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Database: getEnv("DB_NAME", "rebalancer"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MarketData: MarketDataConfig{
			GlobalBaseURL: getEnv("MARKETDATA_GLOBAL_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
			KRXBaseURL:    getEnv("MARKETDATA_KRX_URL", "https://api.finance.naver.com/siseJson.naver"),
			FXBaseURL:     getEnv("MARKETDATA_FX_URL", "https://api.exchangerate-api.com/v4/latest"),
			CacheTTLSecs:  getEnvInt("MARKETDATA_CACHE_TTL_SECS", 300),
		},
		Scheduler: SchedulerConfig{
			Enabled:     getEnvBool("SCHEDULER_ENABLED", false),
			RefreshSpec: getEnv("SCHEDULER_REFRESH_SPEC", "0 */15 * * * *"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}

	return cfg, nil
}

// ConnString builds the lib/pq connection string
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Database)
}

// URL builds the postgres:// URL used by golang-migrate
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

// Addr builds the host:port address of the Redis server
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
