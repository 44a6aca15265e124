package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Predict API rate limiting, in requests per second.
	PredictRateLimit float64
	PredictRateBurst int

	// RiskModelFile optionally overrides the built-in model coefficients.
	RiskModelFile string

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

const maxBatchSize = 1000

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := parsePositiveDuration("BATCH_FLUSH_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	rateLimit, err := strconv.ParseFloat(EnvOrDefault("PREDICT_RATE_LIMIT", "20"), 64)
	if err != nil || rateLimit <= 0 {
		return nil, errors.New("invalid PREDICT_RATE_LIMIT: must be a positive number")
	}

	rateBurst, err := strconv.Atoi(EnvOrDefault("PREDICT_RATE_BURST", "40"))
	if err != nil || rateBurst < 1 {
		return nil, errors.New("invalid PREDICT_RATE_BURST: must be a positive integer")
	}

	mapboxCacheSize := parseMapboxCacheSize()

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       ParseBrokers(EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   EnvOrDefault("KAFKA_SOURCE_TOPIC", "hazard-observations"),
		KafkaSinkTopic:     EnvOrDefault("KAFKA_SINK_TOPIC", "hazard-assessments"),
		KafkaGroupID:       EnvOrDefault("KAFKA_GROUP_ID", "hazard-risk-service"),
		HTTPAddr:           EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		PredictRateLimit: rateLimit,
		PredictRateBurst: rateBurst,
		RiskModelFile:    os.Getenv("RISK_MODEL_FILE"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: mapboxCacheSize,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// EnvOrDefault returns the value of key, or fallback when it is unset or empty.
func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ParseBrokers splits a comma-separated broker list, dropping blanks.
func ParseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parseBatchSize() (int, error) {
	n, err := strconv.Atoi(EnvOrDefault("BATCH_SIZE", "50"))
	if err != nil || n < 1 || n > maxBatchSize {
		return 0, fmt.Errorf("invalid BATCH_SIZE: must be between 1 and %d", maxBatchSize)
	}
	return n, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
