// Package config centralises configuration parsing for the workout log service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config captures runtime configuration values for the workout log service.
type Config struct {
	HTTPAddress        string        `toml:"http_address"`
	MetricsAddress     string        `toml:"metrics_address"`
	PostgresURL        string        `toml:"postgres_url"`
	KafkaBrokers       []string      `toml:"kafka_brokers"`
	SchemaRegistryURL  string        `toml:"schema_registry_url"`
	ConsumerGroupID    string        `toml:"consumer_group_id"`
	ConsumerTopics     []string      `toml:"consumer_topics"` // empty consumes every outbox topic
	OutboxEnabled      bool          `toml:"outbox_enabled"`
	OutboxPollInterval time.Duration `toml:"outbox_poll_interval"`
	OutboxBatchSize    int           `toml:"outbox_batch_size"`
	JWTSecret          string        `toml:"jwt_secret"`
	JWTIssuer          string        `toml:"jwt_issuer"`
	DLQPollInterval    time.Duration `toml:"dlq_poll_interval"` // Interval between DLQ polling iterations.
	DLQMaxRetries      int           `toml:"dlq_max_retries"`   // Maximum number of DLQ retry attempts before quarantine.
	DLQBaseDelay       time.Duration `toml:"dlq_base_delay"`    // Base delay used for exponential backoff.
	// logging
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	LogToStdout bool   `toml:"log_to_stdout"`
	LogJSON     bool   `toml:"log_json"`
	// week and month boundaries are computed in this zone
	Timezone        string `toml:"timezone"`
	TracingEnabled  bool   `toml:"tracing_enabled"`
	TracingEndpoint string `toml:"tracing_endpoint"`
}

// Toml is the layout of the optional config file, one section per environment.
type Toml struct {
	Development Config `toml:"development"`
	Production  Config `toml:"production"`
}

// Get returns the section for env.
func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "", "dev", "development":
		return &t.Development, nil
	case "prod", "production":
		return &t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Defaults returns the local development configuration.
func Defaults() Config {
	return Config{
		HTTPAddress:        ":8080",
		MetricsAddress:     "",
		PostgresURL:        "",
		KafkaBrokers:       []string{"kafka:9092"},
		SchemaRegistryURL:  "http://schema-registry:8081",
		ConsumerGroupID:    "workout-log-audit",
		OutboxEnabled:      false,
		OutboxPollInterval: 2 * time.Second,
		OutboxBatchSize:    25,
		JWTSecret:          "dev-secret-change-me",
		JWTIssuer:          "workoutlog.identity",
		DLQPollInterval:    30 * time.Second,
		DLQMaxRetries:      5,
		DLQBaseDelay:       time.Minute,
		LogLevel:           "info",
		LogToStdout:        true,
		Timezone:           "Local",
		TracingEndpoint:    "http://localhost:14268/api/traces",
	}
}

// Load builds the configuration from defaults, then the env section of the TOML file at
// path when path is set, then environment variables, which always win.
func Load(env, path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		file := Toml{Development: cfg, Production: cfg}
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
		}
		section, err := file.Get(env)
		if err != nil {
			return Config{}, err
		}
		cfg = *section
	}

	cfg.HTTPAddress = getEnv("HTTP_ADDRESS", cfg.HTTPAddress)
	cfg.MetricsAddress = getEnv("METRICS_ADDRESS", cfg.MetricsAddress)
	cfg.PostgresURL = getEnv("POSTGRES_URL", cfg.PostgresURL)
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	cfg.SchemaRegistryURL = getEnv("SCHEMA_REGISTRY_URL", cfg.SchemaRegistryURL)
	cfg.ConsumerGroupID = getEnv("CONSUMER_GROUP_ID", cfg.ConsumerGroupID)
	if topics := getEnv("CONSUMER_TOPICS", ""); topics != "" {
		cfg.ConsumerTopics = splitAndTrim(topics)
	}
	cfg.OutboxEnabled = getBoolEnv("OUTBOX_ENABLED", cfg.OutboxEnabled)
	cfg.OutboxPollInterval = getDurationEnv("OUTBOX_POLL_INTERVAL", cfg.OutboxPollInterval)
	cfg.OutboxBatchSize = getIntEnv("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.DLQPollInterval = getDurationEnv("DLQ_POLL_INTERVAL", cfg.DLQPollInterval)
	cfg.DLQMaxRetries = getIntEnv("DLQ_MAX_RETRIES", cfg.DLQMaxRetries)
	cfg.DLQBaseDelay = getDurationEnv("DLQ_BASE_DELAY", cfg.DLQBaseDelay)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.LogToStdout = getBoolEnv("LOG_TO_STDOUT", cfg.LogToStdout)
	cfg.LogJSON = getBoolEnv("LOG_JSON", cfg.LogJSON)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.TracingEnabled = getBoolEnv("TRACING_ENABLED", cfg.TracingEnabled)
	cfg.TracingEndpoint = getEnv("TRACING_ENDPOINT", cfg.TracingEndpoint)

	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
