package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "ow-test-key"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", testAPIKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testAPIKey, cfg.OpenWeatherAPIKey)
	assert.Equal(t, 10*time.Second, cfg.OpenWeatherTimeout)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Empty(t, cfg.ProfilePath)
	assert.False(t, cfg.AdviceEventsEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "activity-advice-events", cfg.KafkaAdviceTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", testAPIKey)
	t.Setenv("OPENWEATHER_TIMEOUT", "3s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DEFAULT_LANGUAGE", "ja")
	t.Setenv("PROFILE_PATH", "/etc/advisor/profiles.yaml")
	t.Setenv("ADVICE_EVENTS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_ADVICE_TOPIC", "custom-advice")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 3*time.Second, cfg.OpenWeatherTimeout)
	assert.Equal(t, "ja", cfg.DefaultLanguage)
	assert.Equal(t, "/etc/advisor/profiles.yaml", cfg.ProfilePath)
	assert.True(t, cfg.AdviceEventsEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-advice", cfg.KafkaAdviceTopic)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENWEATHER_API_KEY")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", testAPIKey)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidProviderTimeout(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", testAPIKey)
	t.Setenv("OPENWEATHER_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENWEATHER_TIMEOUT")
}

func TestLoad_NegativeProviderTimeout(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", testAPIKey)
	t.Setenv("OPENWEATHER_TIMEOUT", "-5s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENWEATHER_TIMEOUT")
}

func TestLoad_AdviceEventsWithoutBrokers(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", testAPIKey)
	t.Setenv("ADVICE_EVENTS_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_BrokersWithoutFlagStayInert(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", testAPIKey)
	t.Setenv("KAFKA_BROKERS", "localhost:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.AdviceEventsEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}
