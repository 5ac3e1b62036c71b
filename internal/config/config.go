package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendS3     = "s3"
)

// Config holds the environment driven configuration for the image service.
type Config struct {
	// Service Configuration
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"flux-ai-pro"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"aipro"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort         int           `env:"HTTP_PORT" envDefault:"8787"`
	MetricsPort      int           `env:"METRICS_PORT" envDefault:"9091"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"json"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS" envDefault:""`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Image provider
	PollinationsBaseURL  string        `env:"POLLINATIONS_BASE_URL" envDefault:"https://image.pollinations.ai"`
	PollinationsAPIKey   string        `env:"POLLINATIONS_API_KEY"`
	ProviderTimeout      time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"120s"`
	ProviderUserAgent    string        `env:"PROVIDER_USER_AGENT" envDefault:"Flux-AI-Pro-V2/2.0.0"`
	ProviderRateLimitRPS float64       `env:"PROVIDER_RATE_LIMIT_RPS" envDefault:"5"`
	ProviderRateBurst    int           `env:"PROVIDER_RATE_LIMIT_BURST" envDefault:"4"`
	BreakerMaxFailures   uint32        `env:"PROVIDER_BREAKER_MAX_FAILURES" envDefault:"5"`
	BreakerOpenTimeout   time.Duration `env:"PROVIDER_BREAKER_OPEN_TIMEOUT" envDefault:"30s"`

	// Cache
	CacheBackend    string        `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	CacheKeyPrefix  string        `env:"CACHE_KEY_PREFIX" envDefault:"flux_v2_"`
	CacheMemorySize int           `env:"CACHE_MEMORY_SIZE" envDefault:"256"`
	RedisURL        string        `env:"REDIS_URL"`

	// S3 cache backend
	S3Endpoint     string `env:"CACHE_S3_ENDPOINT"`
	S3Region       string `env:"CACHE_S3_REGION" envDefault:"us-east-1"`
	S3Bucket       string `env:"CACHE_S3_BUCKET"`
	S3AccessKeyID  string `env:"CACHE_S3_ACCESS_KEY_ID"`
	S3SecretKey    string `env:"CACHE_S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle bool   `env:"CACHE_S3_USE_PATH_STYLE" envDefault:"true"`

	// Prompt translation (Cloudflare Workers AI)
	TranslationEnabled  bool          `env:"TRANSLATION_ENABLED" envDefault:"false"`
	CloudflareAccountID string        `env:"CLOUDFLARE_ACCOUNT_ID"`
	CloudflareAPIToken  string        `env:"CLOUDFLARE_API_TOKEN"`
	CloudflareBaseURL   string        `env:"CLOUDFLARE_API_BASE_URL" envDefault:"https://api.cloudflare.com/client/v4"`
	TranslationModel    string        `env:"TRANSLATION_MODEL" envDefault:"@cf/meta/m2m100-1.2b"`
	TranslationTimeout  time.Duration `env:"TRANSLATION_TIMEOUT" envDefault:"10s"`

	// Generation
	StyleCatalogFile  string        `env:"STYLE_CATALOG_FILE"`
	ConcurrentBatch   bool          `env:"GENERATION_CONCURRENT_BATCH" envDefault:"false"`
	PromptLogLevel    string        `env:"PROMPT_LOG_LEVEL" envDefault:"hashed"`
	PromptLogSalt     string        `env:"PROMPT_LOG_SALT"`
	UsageDatabaseDSN  string        `env:"USAGE_DATABASE_DSN"`
	UsageQueueSize    int           `env:"USAGE_QUEUE_SIZE" envDefault:"256"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"2"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.CacheBackend = strings.ToLower(strings.TrimSpace(c.CacheBackend))
	if c.CacheBackend == "" {
		c.CacheBackend = CacheBackendNone
	}
	c.RedisURL = strings.TrimSpace(c.RedisURL)
	c.S3Bucket = strings.TrimSpace(c.S3Bucket)
	c.S3Endpoint = strings.TrimSpace(c.S3Endpoint)
	c.S3AccessKeyID = strings.TrimSpace(c.S3AccessKeyID)
	c.S3SecretKey = strings.TrimSpace(c.S3SecretKey)
	c.PollinationsBaseURL = strings.TrimSuffix(strings.TrimSpace(c.PollinationsBaseURL), "/")
	c.PromptLogLevel = strings.ToLower(strings.TrimSpace(c.PromptLogLevel))

	switch c.CacheBackend {
	case CacheBackendNone, CacheBackendMemory:
	case CacheBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND is redis")
		}
	case CacheBackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("CACHE_S3_BUCKET is required when CACHE_BACKEND is s3")
		}
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q", c.CacheBackend)
	}

	if c.CacheBackend == CacheBackendMemory && c.CacheMemorySize <= 0 {
		return fmt.Errorf("CACHE_MEMORY_SIZE must be positive")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.TranslationEnabled {
		if strings.TrimSpace(c.CloudflareAccountID) == "" {
			return fmt.Errorf("CLOUDFLARE_ACCOUNT_ID is required when TRANSLATION_ENABLED is true")
		}
		if strings.TrimSpace(c.CloudflareAPIToken) == "" {
			return fmt.Errorf("CLOUDFLARE_API_TOKEN is required when TRANSLATION_ENABLED is true")
		}
	}

	if c.PollinationsBaseURL == "" {
		return fmt.Errorf("POLLINATIONS_BASE_URL must not be empty")
	}

	switch c.PromptLogLevel {
	case "none", "hashed", "full":
	default:
		return fmt.Errorf("unsupported PROMPT_LOG_LEVEL %q", c.PromptLogLevel)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MetricsAddr returns the Prometheus listen address.
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

// UsageStoreEnabled reports whether usage records go to postgres.
func (c *Config) UsageStoreEnabled() bool {
	return strings.TrimSpace(c.UsageDatabaseDSN) != ""
}

// CacheEnabled reports whether a cache backend is selected.
func (c *Config) CacheEnabled() bool {
	return c.CacheBackend != CacheBackendNone
}
