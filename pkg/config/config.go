package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Extraction collaborator
	ExtractionBaseURL string
	ExtractionTimeout time.Duration

	// Notification webhook; empty disables delivery
	NotifyWebhookURL string

	// Batch processing
	BatchSize    int
	MaxRetries   int
	RetryDelay   time.Duration
	PollInterval time.Duration

	// HTTP boundary
	AllowedOrigins     []string
	RegisterRateLimit  int64
	RegisterRatePeriod time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("EXTRACTION_BASE_URL", "http://localhost:9090")
	viper.SetDefault("EXTRACTION_TIMEOUT", "120s")
	viper.SetDefault("NOTIFY_WEBHOOK_URL", "")
	viper.SetDefault("BATCH_SIZE", 5)
	viper.SetDefault("PROCESSING_MAX_RETRIES", 3)
	viper.SetDefault("PROCESSING_RETRY_DELAY", "5s")
	viper.SetDefault("POLL_INTERVAL", "30s")
	viper.SetDefault("ALLOWED_ORIGINS", "")
	viper.SetDefault("REGISTER_RATE_LIMIT", 60)
	viper.SetDefault("REGISTER_RATE_PERIOD", "1m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.ExtractionBaseURL = viper.GetString("EXTRACTION_BASE_URL")
	cfg.ExtractionTimeout = parseDurationOr("EXTRACTION_TIMEOUT", 120*time.Second)

	cfg.NotifyWebhookURL = viper.GetString("NOTIFY_WEBHOOK_URL")
	if cfg.NotifyWebhookURL == "" {
		log.Println("Warning: NOTIFY_WEBHOOK_URL not set. Document change notifications are disabled.")
	}

	cfg.BatchSize = viper.GetInt("BATCH_SIZE")
	if cfg.BatchSize < 1 {
		log.Printf("Warning: Invalid BATCH_SIZE (%d). Defaulting to 5.\n", cfg.BatchSize)
		cfg.BatchSize = 5
	}

	cfg.MaxRetries = viper.GetInt("PROCESSING_MAX_RETRIES")
	if cfg.MaxRetries < 1 {
		log.Printf("Warning: Invalid PROCESSING_MAX_RETRIES (%d). Defaulting to 3.\n", cfg.MaxRetries)
		cfg.MaxRetries = 3
	}

	cfg.RetryDelay = parseDurationOr("PROCESSING_RETRY_DELAY", 5*time.Second)
	cfg.PollInterval = parseDurationOr("POLL_INTERVAL", 30*time.Second)

	if origins := viper.GetString("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	cfg.RegisterRateLimit = viper.GetInt64("REGISTER_RATE_LIMIT")
	cfg.RegisterRatePeriod = parseDurationOr("REGISTER_RATE_PERIOD", time.Minute)

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
