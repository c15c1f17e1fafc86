package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Device identity storage backends
const (
	DeviceStoreBadger = "badger"
	DeviceStoreRedis  = "redis"
	DeviceStoreMemory = "memory"
)

// Config holds all configuration values
type Config struct {
	// Backend API
	APIBaseURL  string        `json:"api_base_url"`
	HTTPTimeout time.Duration `json:"http_timeout"`
	Locale      string        `json:"locale"`

	// Circuit breaker around the backend transport
	CircuitBreakerEnabled bool          `json:"circuit_breaker_enabled"`
	CircuitBreakerTimeout time.Duration `json:"circuit_breaker_timeout"`

	// Device identity storage
	DeviceStore     string `json:"device_store"`
	DeviceStorePath string `json:"device_store_path"`

	// Redis configuration (device store = redis)
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Page-data server configuration
	Port           int     `json:"port"`
	Environment    string  `json:"environment"`
	RateLimitRPS   float64 `json:"rate_limit_rps"`
	RateLimitBurst int     `json:"rate_limit_burst"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`

	// TracingSampleRatio is the fraction of root spans kept, 0 to 1
	TracingSampleRatio float64 `json:"tracing_sample_ratio"`

	// Municipalities accepted by the feed filter
	Municipalities []string `json:"municipalities"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load builds a Config from the environment without touching AppConfig
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	httpTimeout, err := time.ParseDuration(getEnvOrDefault("HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}

	breakerTimeout, err := time.ParseDuration(getEnvOrDefault("CIRCUIT_BREAKER_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CIRCUIT_BREAKER_TIMEOUT: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnvOrDefault("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(getEnvOrDefault("RATE_LIMIT_BURST", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	sampleRatio, err := strconv.ParseFloat(getEnvOrDefault("TRACING_SAMPLE_RATIO", "1"), 64)
	if err != nil || sampleRatio < 0 || sampleRatio > 1 {
		return nil, fmt.Errorf("invalid TRACING_SAMPLE_RATIO %q: expected a number between 0 and 1", os.Getenv("TRACING_SAMPLE_RATIO"))
	}

	deviceStore := getEnvOrDefault("DEVICE_STORE", DeviceStoreBadger)
	switch deviceStore {
	case DeviceStoreBadger, DeviceStoreRedis, DeviceStoreMemory:
	default:
		return nil, fmt.Errorf("invalid DEVICE_STORE %q: expected badger, redis or memory", deviceStore)
	}

	municipalities := DefaultMunicipalities
	if raw := os.Getenv("MUNICIPALITIES"); raw != "" {
		municipalities = splitList(raw)
	}

	return &Config{
		APIBaseURL:  strings.TrimRight(getEnvOrDefault("API_BASE_URL", "http://localhost:3000"), "/"),
		HTTPTimeout: httpTimeout,
		Locale:      getEnvOrDefault("LOCALE", "pt"),

		CircuitBreakerEnabled: getEnvAsBoolOrDefault("CIRCUIT_BREAKER_ENABLED", true),
		CircuitBreakerTimeout: breakerTimeout,

		DeviceStore:     deviceStore,
		DeviceStorePath: getEnvOrDefault("DEVICE_STORE_PATH", defaultDeviceStorePath()),

		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		Port:           port,
		Environment:    getEnvOrDefault("ENVIRONMENT", "development"),
		RateLimitRPS:   rps,
		RateLimitBurst: burst,

		TracingEnabled:     getEnvAsBoolOrDefault("TRACING_ENABLED", false),
		TracingEndpoint:    getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: sampleRatio,

		Municipalities: municipalities,
	}, nil
}

// IsMunicipality reports whether name is one of the configured municipalities
func (c *Config) IsMunicipality(name string) bool {
	for _, m := range c.Municipalities {
		if m == name {
			return true
		}
	}
	return false
}

func defaultDeviceStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "imbecis", "device")
	}
	return filepath.Join(home, ".imbecis", "device")
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsBoolOrDefault parses a boolean env var, falling back on parse errors
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
