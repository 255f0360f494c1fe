// Package config loads service settings from a dotenv file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the service.
type Config struct {
	AppHost   string
	AppPort   string
	LogLevel  string
	LogFormat string

	// DatabaseURL selects the PostgreSQL backend when set.
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// RedisAddr selects the Redis spend lock when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SpendLockTTL  time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	GRPCPort string

	JWTSecretKey string
	JWTExp       time.Duration

	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIMaxTokens int
	OpenAIBaseURL   string

	AdminAPIKeyHash string
}

// Load reads path into the environment (a missing file is ignored) and builds
// the Config with defaults for unset keys.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var errs []string
	getInt := func(key string, defaultValue int) int {
		raw := getEnv(key, strconv.Itoa(defaultValue))
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s=%q is not an integer", key, raw))
			return defaultValue
		}
		return n
	}

	cfg := &Config{
		AppHost:   getEnv("APP_HOST", "localhost"),
		AppPort:   getEnv("APP_PORT", "8080"),
		LogLevel:  getEnv("APP_LOG_LEVEL", "info"),
		LogFormat: getEnv("APP_LOG_FORMAT", "json"),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 16),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 8),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		SpendLockTTL:  time.Duration(getInt("SPEND_LOCK_TTL_SECOND", 30)) * time.Second,

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "ledger-events"),

		GRPCPort: getEnv("GRPC_PORT", ""),

		JWTSecretKey: getEnv("JWT_SECRET_KEY", "my_super_secret_key"),
		JWTExp:       time.Duration(getInt("JWT_EXP_SECOND", 3600)) * time.Second,

		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIMaxTokens: getInt("OPENAI_MAX_TOKENS", 1000),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),

		AdminAPIKeyHash: getEnv("ADMIN_API_KEY_HASH", ""),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return c.AppHost + ":" + c.AppPort
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
