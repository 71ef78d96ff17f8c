package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/bcg-survey-pipeline/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Input and output artifacts.
	InputPath        string
	CleanedOutPath   string
	YearlyOutPath    string
	WatershedOutPath string
	HUCNamesPath     string // optional HUC8 -> region name reference CSV

	CutoffYear int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Optional Kafka export of watershed summaries.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cutoffYear, err := parseCutoffYear()
	if err != nil {
		return nil, err
	}

	kafkaBrokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(kafkaBrokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		InputPath:        os.Getenv("INPUT_CSV"),
		CleanedOutPath:   envOrDefault("OUT_CLEANED_CSV", "out/samples_cleaned.csv"),
		YearlyOutPath:    envOrDefault("OUT_YEARLY_CSV", "out/site_year_aggregates.csv"),
		WatershedOutPath: envOrDefault("OUT_WATERSHED_CSV", "out/watershed_summaries.csv"),
		HUCNamesPath:     os.Getenv("HUC_NAMES_CSV"),
		CutoffYear:       cutoffYear,
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     kafkaBrokers,
		KafkaTopic:       envOrDefault("KAFKA_SINK_TOPIC", "watershed-summaries"),
	}

	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_CSV is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseCutoffYear() (int, error) {
	s := envOrDefault("CUTOFF_YEAR", strconv.Itoa(domain.DefaultCutoffYear))
	year, err := strconv.Atoi(s)
	if err != nil || year < 1900 || year > 2100 {
		return 0, errors.New("invalid CUTOFF_YEAR")
	}
	return year, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
