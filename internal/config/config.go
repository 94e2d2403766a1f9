package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Enrollment service
	Host            string
	ClientVersion   string
	ApplicationType string
	TLSEnabled      bool
	TLSServerName   string
	CallTimeout     time.Duration

	// gRPC (stub service)
	GRPCHost string
	GRPCPort string

	// Tokens (stub service)
	TokenTTL             time.Duration
	TokenCleanupInterval time.Duration

	// Environment
	Environment string
	LogLevel    string
	MetricsAddr string

	// Worker Pool
	BulkWorkerPoolSize int
	BulkTaskQueueSize  int
	BulkRatePerSecond  float64
	BulkBurst          int
}

// fileConfig is the optional YAML layout; zero values leave defaults alone.
type fileConfig struct {
	Enrollment struct {
		Host            string `yaml:"host"`
		ClientVersion   string `yaml:"clientVersion"`
		ApplicationType string `yaml:"applicationType"`
		TLS             *bool  `yaml:"tls"`
		TLSServerName   string `yaml:"tlsServerName"`
		CallTimeout     string `yaml:"callTimeout"`
	} `yaml:"enrollment"`
	Server struct {
		Host                 string `yaml:"host"`
		Port                 string `yaml:"port"`
		TokenTTL             string `yaml:"tokenTTL"`
		TokenCleanupInterval string `yaml:"tokenCleanupInterval"`
	} `yaml:"server"`
	Bulk struct {
		Workers       int     `yaml:"workers"`
		QueueSize     int     `yaml:"queueSize"`
		RatePerSecond float64 `yaml:"ratePerSecond"`
		Burst         int     `yaml:"burst"`
	} `yaml:"bulk"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"logLevel"`
	MetricsAddr string `yaml:"metricsAddr"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ClientVersion:        "1.0.0",
		CallTimeout:          30 * time.Second,
		GRPCHost:             "0.0.0.0",
		GRPCPort:             "50051",
		TokenTTL:             24 * time.Hour,
		TokenCleanupInterval: 5 * time.Minute,
		Environment:          "development",
		LogLevel:             "info",
		BulkWorkerPoolSize:   4,
		BulkTaskQueueSize:    100,
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := Default()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from a YAML file, then applies environment
// variable overrides and then overrides, in order. An empty path behaves like Load.
func LoadFile(path string, overrides ...func(*Config)) (*Config, error) {
	return load(path, (*Config).Validate, overrides)
}

// LoadServerFile is LoadFile for the stub service, which needs no client settings
func LoadServerFile(path string, overrides ...func(*Config)) (*Config, error) {
	return load(path, (*Config).ValidateServer, overrides)
}

func load(path string, validate func(*Config) error, overrides []func(*Config)) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		var parsed fileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if err := merge(cfg, parsed); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	for _, override := range overrides {
		override(cfg)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateServer validates the settings the stub service uses
func (c *Config) ValidateServer() error {
	if c.GRPCPort == "" {
		return fmt.Errorf("GRPC_PORT is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	if c.TokenCleanupInterval <= 0 {
		return fmt.Errorf("token cleanup interval must be positive")
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("ENROLLMENT_HOST is required")
	}
	if c.ClientVersion == "" {
		return fmt.Errorf("ENROLLMENT_CLIENT_VERSION is required")
	}
	if c.CallTimeout < 0 {
		return fmt.Errorf("call timeout must not be negative")
	}
	if c.BulkWorkerPoolSize < 1 {
		return fmt.Errorf("BULK_WORKER_POOL_SIZE must be at least 1")
	}
	if c.BulkTaskQueueSize < 1 {
		return fmt.Errorf("BULK_TASK_QUEUE_SIZE must be at least 1")
	}
	if c.BulkRatePerSecond < 0 {
		return fmt.Errorf("BULK_RATE_PER_SECOND must not be negative")
	}
	return nil
}

func merge(dst *Config, src fileConfig) error {
	if src.Enrollment.Host != "" {
		dst.Host = src.Enrollment.Host
	}
	if src.Enrollment.ClientVersion != "" {
		dst.ClientVersion = src.Enrollment.ClientVersion
	}
	if src.Enrollment.ApplicationType != "" {
		dst.ApplicationType = src.Enrollment.ApplicationType
	}
	if src.Enrollment.TLS != nil {
		dst.TLSEnabled = *src.Enrollment.TLS
	}
	if src.Enrollment.TLSServerName != "" {
		dst.TLSServerName = src.Enrollment.TLSServerName
	}
	if err := mergeDuration(&dst.CallTimeout, src.Enrollment.CallTimeout, "enrollment.callTimeout"); err != nil {
		return err
	}
	if src.Server.Host != "" {
		dst.GRPCHost = src.Server.Host
	}
	if src.Server.Port != "" {
		dst.GRPCPort = src.Server.Port
	}
	if err := mergeDuration(&dst.TokenTTL, src.Server.TokenTTL, "server.tokenTTL"); err != nil {
		return err
	}
	if err := mergeDuration(&dst.TokenCleanupInterval, src.Server.TokenCleanupInterval, "server.tokenCleanupInterval"); err != nil {
		return err
	}
	if src.Bulk.Workers != 0 {
		dst.BulkWorkerPoolSize = src.Bulk.Workers
	}
	if src.Bulk.QueueSize != 0 {
		dst.BulkTaskQueueSize = src.Bulk.QueueSize
	}
	if src.Bulk.RatePerSecond != 0 {
		dst.BulkRatePerSecond = src.Bulk.RatePerSecond
	}
	if src.Bulk.Burst != 0 {
		dst.BulkBurst = src.Bulk.Burst
	}
	if src.Environment != "" {
		dst.Environment = src.Environment
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.MetricsAddr != "" {
		dst.MetricsAddr = src.MetricsAddr
	}
	return nil
}

func mergeDuration(dst *time.Duration, raw, key string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Host = getEnv("ENROLLMENT_HOST", cfg.Host)
	cfg.ClientVersion = getEnv("ENROLLMENT_CLIENT_VERSION", cfg.ClientVersion)
	cfg.ApplicationType = getEnv("APPLICATION_TYPE", cfg.ApplicationType)
	cfg.TLSEnabled = getEnvBool("ENROLLMENT_TLS", cfg.TLSEnabled)
	cfg.TLSServerName = getEnv("ENROLLMENT_TLS_SERVER_NAME", cfg.TLSServerName)
	cfg.GRPCHost = getEnv("GRPC_HOST", cfg.GRPCHost)
	cfg.GRPCPort = getEnv("GRPC_PORT", cfg.GRPCPort)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))
	cfg.MetricsAddr = getEnv("METRICS_ADDR", cfg.MetricsAddr)
	cfg.BulkWorkerPoolSize = getEnvInt("BULK_WORKER_POOL_SIZE", cfg.BulkWorkerPoolSize)
	cfg.BulkTaskQueueSize = getEnvInt("BULK_TASK_QUEUE_SIZE", cfg.BulkTaskQueueSize)
	cfg.BulkRatePerSecond = getEnvFloat("BULK_RATE_PER_SECOND", cfg.BulkRatePerSecond)
	cfg.BulkBurst = getEnvInt("BULK_BURST", cfg.BulkBurst)

	// Parse durations
	if secs := getEnvInt("ENROLLMENT_TIMEOUT_SECONDS", -1); secs >= 0 {
		cfg.CallTimeout = time.Duration(secs) * time.Second
	}
	if mins := getEnvInt("TOKEN_TTL_MINUTES", -1); mins > 0 {
		cfg.TokenTTL = time.Duration(mins) * time.Minute
	}
	if mins := getEnvInt("TOKEN_CLEANUP_INTERVAL_MINUTES", -1); mins > 0 {
		cfg.TokenCleanupInterval = time.Duration(mins) * time.Minute
	}
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvBool(key string, defaultValue bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
