package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Backend  BackendConfig
	LLM      LLMConfig
	Storage  StorageConfig
	Webhook  WebhookConfig
	Limits   LimitsConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BackendConfig points at the submission backend that owns the
// product-code listing and the submission records.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LLMConfig struct {
	OpenAIKey        string
	AnthropicKey     string
	DefaultProvider  string
	DefaultModel     string
	EmbeddingModel   string
	FallbackProvider string
	MaxRetries       int
}

type StorageConfig struct {
	SupabaseURL string
	SupabaseKey string
	Bucket      string
}

type WebhookConfig struct {
	SigningSecret string
	Timeout       time.Duration
	MaxAttempts   int
}

// LimitsConfig bundles the intake-side caps. Defaults match the policy
// limits the UI advertises.
type LimitsConfig struct {
	MaxUploadBytes  int64
	ProductCacheTTL time.Duration
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxRetries, err := getEnvInt("LLM_MAX_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_RETRIES: %w", err)
	}

	backendTimeout, err := getEnvInt("BACKEND_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT_SECONDS: %w", err)
	}

	webhookTimeout, err := getEnvInt("WEBHOOK_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid WEBHOOK_TIMEOUT_SECONDS: %w", err)
	}

	webhookAttempts, err := getEnvInt("WEBHOOK_MAX_ATTEMPTS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid WEBHOOK_MAX_ATTEMPTS: %w", err)
	}

	maxUpload, err := getEnvInt64("MAX_UPLOAD_BYTES", 10<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}

	cacheTTL, err := getEnvInt("PRODUCT_CACHE_TTL_SECONDS", 300)
	if err != nil {
		return nil, fmt.Errorf("invalid PRODUCT_CACHE_TTL_SECONDS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
			Timeout: time.Duration(backendTimeout) * time.Second,
		},
		LLM: LLMConfig{
			OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			DefaultProvider:  getEnv("LLM_DEFAULT_PROVIDER", "openai"),
			DefaultModel:     getEnv("LLM_DEFAULT_MODEL", "gpt-4o-mini"),
			EmbeddingModel:   getEnv("LLM_EMBEDDING_MODEL", "text-embedding-3-small"),
			FallbackProvider: getEnv("LLM_FALLBACK_PROVIDER", ""),
			MaxRetries:       maxRetries,
		},
		Storage: StorageConfig{
			SupabaseURL: getEnv("SUPABASE_URL", ""),
			SupabaseKey: getEnv("SUPABASE_SERVICE_KEY", ""),
			Bucket:      getEnv("STORAGE_BUCKET", "documents"),
		},
		Webhook: WebhookConfig{
			SigningSecret: getEnv("WEBHOOK_SIGNING_SECRET", ""),
			Timeout:       time.Duration(webhookTimeout) * time.Second,
			MaxAttempts:   webhookAttempts,
		},
		Limits: LimitsConfig{
			MaxUploadBytes:  maxUpload,
			ProductCacheTTL: time.Duration(cacheTTL) * time.Second,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Backend.BaseURL == "" {
		missing = append(missing, "BACKEND_BASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseInt(v, 10, 64)
}
