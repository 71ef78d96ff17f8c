package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInputPath = "data/samples_merged.csv"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INPUT_CSV", testInputPath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testInputPath, cfg.InputPath)
	assert.Equal(t, "out/samples_cleaned.csv", cfg.CleanedOutPath)
	assert.Equal(t, "out/site_year_aggregates.csv", cfg.YearlyOutPath)
	assert.Equal(t, "out/watershed_summaries.csv", cfg.WatershedOutPath)
	assert.Empty(t, cfg.HUCNamesPath)
	assert.Equal(t, 2000, cfg.CutoffYear)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "watershed-summaries", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("INPUT_CSV", "merged.csv")
	t.Setenv("OUT_CLEANED_CSV", "cleaned.csv")
	t.Setenv("OUT_YEARLY_CSV", "yearly.csv")
	t.Setenv("OUT_WATERSHED_CSV", "watershed.csv")
	t.Setenv("HUC_NAMES_CSV", "huc_names.csv")
	t.Setenv("CUTOFF_YEAR", "2010")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "merged.csv", cfg.InputPath)
	assert.Equal(t, "cleaned.csv", cfg.CleanedOutPath)
	assert.Equal(t, "yearly.csv", cfg.YearlyOutPath)
	assert.Equal(t, "watershed.csv", cfg.WatershedOutPath)
	assert.Equal(t, "huc_names.csv", cfg.HUCNamesPath)
	assert.Equal(t, 2010, cfg.CutoffYear)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaTopic)
}

func TestLoad_MissingInput(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INPUT_CSV")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("INPUT_CSV", testInputPath)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("INPUT_CSV", testInputPath)
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidCutoffYear(t *testing.T) {
	t.Setenv("INPUT_CSV", testInputPath)
	t.Setenv("CUTOFF_YEAR", "ten")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CUTOFF_YEAR")
}

func TestLoad_CutoffYearOutOfRange(t *testing.T) {
	t.Setenv("INPUT_CSV", testInputPath)
	t.Setenv("CUTOFF_YEAR", "1650")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CUTOFF_YEAR")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("INPUT_CSV", testInputPath)
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_KafkaBrokersImplyEnabled(t *testing.T) {
	t.Setenv("INPUT_CSV", testInputPath)
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("INPUT_CSV", testInputPath)
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}
