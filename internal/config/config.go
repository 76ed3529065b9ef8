package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/loscheesy/ordering/internal/domain"
)

// Intake destinations of the deployed restaurant forms. Aguadilla and Condado
// have no form yet and fall back to the default destination.
const (
	defaultIntakeEndpoint  = "https://formspree.io/f/mgvpozgz"
	hatilloIntakeEndpoint  = "https://formspree.io/f/mqagdzyn"
	doradoIntakeEndpoint   = "https://formspree.io/f/meopljvw"
	defaultIntakeTimeout   = 15 * time.Second
	defaultBreakerFailures = 5
)

type Config struct {
	HTTPPort           string
	Env                string
	LogLevel           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	IntakeTimeout        time.Duration
	DefaultEndpoint      string
	Endpoints            map[domain.Location]string
	ConfirmationEndpoint string
	BreakerFailures      uint32
	BreakerOpenTimeout   time.Duration

	SessionTTL time.Duration

	RedisAddr     string
	RedisPassword string
	ReceiptTTL    time.Duration

	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MaxRequestBodySize: 1 << 20, // 1MB

		DefaultEndpoint: getEnv("INTAKE_ENDPOINT_DEFAULT", defaultIntakeEndpoint),
		Endpoints: map[domain.Location]string{
			"hatillo":   getEnv("INTAKE_ENDPOINT_HATILLO", hatilloIntakeEndpoint),
			"dorado":    getEnv("INTAKE_ENDPOINT_DORADO", doradoIntakeEndpoint),
			"aguadilla": getEnv("INTAKE_ENDPOINT_AGUADILLA", ""),
			"condado":   getEnv("INTAKE_ENDPOINT_CONDADO", ""),
		},
		ConfirmationEndpoint: getEnv("CONFIRMATION_ENDPOINT", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "orders-placed"),
	}

	var err error
	durations := []struct {
		dst *time.Duration
		key string
		def time.Duration
	}{
		{&cfg.RequestTimeout, "REQUEST_TIMEOUT", 30 * time.Second},
		{&cfg.ShutdownTimeout, "SHUTDOWN_TIMEOUT", 10 * time.Second},
		{&cfg.IntakeTimeout, "INTAKE_TIMEOUT", defaultIntakeTimeout},
		{&cfg.BreakerOpenTimeout, "BREAKER_OPEN_TIMEOUT", 30 * time.Second},
		{&cfg.SessionTTL, "SESSION_TTL", 2 * time.Hour},
		{&cfg.ReceiptTTL, "RECEIPT_TTL", 15 * time.Minute},
	}
	for _, d := range durations {
		if *d.dst, err = getDuration(d.key, d.def); err != nil {
			return nil, err
		}
	}

	failures, err := getUint("BREAKER_FAILURES", defaultBreakerFailures)
	if err != nil {
		return nil, err
	}
	cfg.BreakerFailures = failures

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func getUint(key string, defaultValue uint32) (uint32, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return uint32(n), nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
