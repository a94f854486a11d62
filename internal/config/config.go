package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// app config, loaded from environment variables
type Config struct {
	Port         string
	Provider     string // text-generation oracle provider; "none" disables the oracle
	StoreBackend string // memory, redis, or gorm

	RedisAddr     string
	RedisPassword string

	OracleTimeout     time.Duration
	CatalogSeed       int64
	RetentionSchedule string

	// retention policy
	HistoryLimit           int
	EvaluationHistoryLimit int
	RetentionDays          int

	// score adjustment policy; cutoffs are tunable, defaults are historical
	SlowThresholdSeconds   float64
	RushedThresholdSeconds float64
	SlowPenalty            float64
	RushedPenalty          float64
	ConsistencyBonus       float64
	LowVarianceThreshold   float64
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:         getEnvOrDefault("PORT", "8080"),
		Provider:     getEnvOrDefault("ORACLE_PROVIDER", "gemini"),
		StoreBackend: getEnvOrDefault("STORE_BACKEND", "memory"),

		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		OracleTimeout:     getEnvDuration("ORACLE_TIMEOUT", 10*time.Second),
		CatalogSeed:       int64(getEnvInt("CATALOG_SEED", int(time.Now().UnixNano()))),
		RetentionSchedule: getEnvOrDefault("RETENTION_SCHEDULE", "0 3 * * *"),

		HistoryLimit:           getEnvInt("HISTORY_LIMIT", 50),
		EvaluationHistoryLimit: getEnvInt("EVALUATION_HISTORY_LIMIT", 100),
		RetentionDays:          getEnvInt("RETENTION_DAYS", 30),

		SlowThresholdSeconds:   getEnvFloat("SLOW_THRESHOLD_SECONDS", 300),
		RushedThresholdSeconds: getEnvFloat("RUSHED_THRESHOLD_SECONDS", 60),
		SlowPenalty:            getEnvFloat("SLOW_PENALTY", 5),
		RushedPenalty:          getEnvFloat("RUSHED_PENALTY", 10),
		ConsistencyBonus:       getEnvFloat("CONSISTENCY_BONUS", 5),
		LowVarianceThreshold:   getEnvFloat("LOW_VARIANCE_THRESHOLD", 100),
	}

	if config.Provider == "none" {
		config.Provider = ""
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	switch config.StoreBackend {
	case "memory", "redis", "gorm":
	default:
		return errors.New("unsupported store backend: " + config.StoreBackend + ". Supported: memory, redis, gorm")
	}
	if config.Provider != "" && config.Provider != "gemini" {
		return errors.New("unsupported oracle provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.HistoryLimit <= 0 || config.EvaluationHistoryLimit <= 0 || config.RetentionDays <= 0 {
		return errors.New("history limits and retention days must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
