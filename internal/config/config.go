package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	Auth        AuthConfig
	Processing  ProcessingConfig
	OpenSearch  OpenSearchConfig
	Ledger      LedgerConfig
	Logging     LoggingConfig
	Environment string // Environment: local, staging, production
}

type ServerConfig struct {
	Port           string
	Production     bool
	AllowedOrigins string
	MaxRequestSize int64
	RateLimitPerMin int
}

type StorageConfig struct {
	Bucket string
	Region string
	Prefix string
}

type AuthConfig struct {
	JWTSecret string
}

type ProcessingConfig struct {
	MaxTextSize    int64
	MaxWorkers     int
	BatchSize      int
	ProcessTimeout time.Duration
}

type OpenSearchConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseSSL   bool
	Index    string
}

type LedgerConfig struct {
	Path       string
	PruneEvery time.Duration
	PruneTTL   time.Duration
}

type LoggingConfig struct {
	Level              string
	Format             string
	EnableRequestLog   bool
	EnableErrorDetails bool
}

func Load() (*Config, error) {
	environment := getEnv("ENVIRONMENT", "local")
	if getEnvBool("PRODUCTION", false) {
		environment = "production"
	}

	var defaultOrigins string
	if environment == "local" {
		defaultOrigins = "http://localhost:3000,http://localhost:5173"
	}

	opensearchPort, err := parseEnvInt("OPENSEARCH_PORT", 9200)
	if err != nil {
		return nil, err
	}

	maxRequestSize, err := parseEnvInt64("MAX_REQUEST_SIZE", 20*1024*1024)
	if err != nil {
		return nil, err
	}

	maxTextSize, err := parseEnvInt64("MAX_TEXT_SIZE", 20*1024*1024)
	if err != nil {
		return nil, err
	}

	maxWorkers, err := parseEnvInt("MAX_WORKERS", 8)
	if err != nil {
		return nil, err
	}

	batchSize, err := parseEnvInt("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}

	processTimeout, err := parseEnvDuration("PROCESS_TIMEOUT", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment: environment,
		Server: ServerConfig{
			Port:            os.Getenv("PORT"), // no default, so validate can catch a missing value
			Production:      environment == "production" || environment == "staging",
			AllowedOrigins:  getEnv("ALLOWED_ORIGINS", defaultOrigins),
			MaxRequestSize:  maxRequestSize,
			RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 120),
		},
		Storage: StorageConfig{
			Bucket: getEnv("STORAGE_BUCKET", "lexcite-documents"),
			Region: getEnv("STORAGE_REGION", "us-east-1"),
			Prefix: getEnv("STORAGE_PREFIX", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Processing: ProcessingConfig{
			MaxTextSize:    maxTextSize,
			MaxWorkers:     maxWorkers,
			BatchSize:      batchSize,
			ProcessTimeout: processTimeout,
		},
		OpenSearch: OpenSearchConfig{
			Host:     getEnv("OPENSEARCH_HOST", ""), // no default, so validate can catch a missing value
			Port:     opensearchPort,
			Username: getEnv("OPENSEARCH_USERNAME", ""),
			Password: getEnv("OPENSEARCH_PASSWORD", ""),
			UseSSL:   getEnvBool("OPENSEARCH_USE_SSL", environment != "local"),
			Index:    getEnv("OPENSEARCH_INDEX", "citations"),
		},
		Ledger: LedgerConfig{
			Path:       getEnv("LEDGER_PATH", "lexcite-ledger.db"),
			PruneEvery: getEnvDuration("LEDGER_PRUNE_EVERY", time.Hour),
			PruneTTL:   getEnvDuration("LEDGER_PRUNE_TTL", 30*24*time.Hour),
		},
		Logging: LoggingConfig{
			Level:              getEnv("LOG_LEVEL", "info"),
			Format:             getEnv("LOG_FORMAT", "json"),
			EnableRequestLog:   getEnvBool("ENABLE_REQUEST_LOGGING", true),
			EnableErrorDetails: getEnvBool("ENABLE_ERROR_DETAILS", environment == "local"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateOpenSearch(); err != nil {
		return err
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	return c.validateProcessing()
}

func (c *Config) validateServer() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.Bucket == "" {
		return fmt.Errorf("STORAGE_BUCKET is required")
	}
	if c.Storage.Region == "" {
		return fmt.Errorf("STORAGE_REGION is required")
	}
	return nil
}

func (c *Config) validateOpenSearch() error {
	if c.OpenSearch.Host == "" {
		return fmt.Errorf("OPENSEARCH_HOST is required")
	}
	if c.OpenSearch.Port < 1 || c.OpenSearch.Port > 65535 {
		return fmt.Errorf("OPENSEARCH_PORT must be between 1 and 65535")
	}
	if c.Environment != "local" {
		if c.OpenSearch.Username == "" {
			return fmt.Errorf("OPENSEARCH_USERNAME is required for non-local environments")
		}
		if c.OpenSearch.Password == "" {
			return fmt.Errorf("OPENSEARCH_PASSWORD is required for non-local environments")
		}
	}
	return nil
}

func (c *Config) validateAuth() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if c.Processing.MaxTextSize <= 0 {
		return fmt.Errorf("MAX_TEXT_SIZE must be positive")
	}
	if c.Processing.MaxWorkers <= 0 {
		return fmt.Errorf("MAX_WORKERS must be positive")
	}
	if c.Processing.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive")
	}
	if c.Processing.ProcessTimeout <= 0 {
		return fmt.Errorf("PROCESS_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func parseEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number", key)
	}
	return intValue, nil
}

func parseEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number", key)
	}
	return intValue, nil
}

func parseEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration", key)
	}
	return duration, nil
}

// isValidURL reports whether urlStr parses as a URL with both a scheme and
// a host. Nothing in this package calls it.
func isValidURL(urlStr string) bool {
	if urlStr == "" {
		return false
	}
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return parsedURL.Scheme != "" && parsedURL.Host != ""
}

func (c *Config) GetOpenSearchURL() string {
	protocol := "http"
	if c.OpenSearch.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s:%d", protocol, c.OpenSearch.Host, c.OpenSearch.Port)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Server.Production
}

func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}
