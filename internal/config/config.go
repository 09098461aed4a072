package config

import (
	"errors"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Weather provider configuration.
	OpenWeatherAPIKey  string
	OpenWeatherTimeout time.Duration

	// Advisory engine configuration.
	DefaultLanguage string
	ProfilePath     string // empty means the embedded profile table

	// Advice event publishing (feature-flagged).
	AdviceEventsEnabled bool
	KafkaBrokers        []string
	KafkaAdviceTopic    string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	providerTimeoutStr := sharedcfg.EnvOrDefault("OPENWEATHER_TIMEOUT", "10s")
	providerTimeout, err := time.ParseDuration(providerTimeoutStr)
	if err != nil || providerTimeout <= 0 {
		return nil, errors.New("invalid OPENWEATHER_TIMEOUT")
	}

	adviceEnabled := sharedcfg.EnvOrDefault("ADVICE_EVENTS_ENABLED", "false") == "true"

	var brokers []string
	if v := sharedcfg.EnvOrDefault("KAFKA_BROKERS", ""); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		OpenWeatherAPIKey:  sharedcfg.EnvOrDefault("OPENWEATHER_API_KEY", ""),
		OpenWeatherTimeout: providerTimeout,

		DefaultLanguage: sharedcfg.EnvOrDefault("DEFAULT_LANGUAGE", "en"),
		ProfilePath:     sharedcfg.EnvOrDefault("PROFILE_PATH", ""),

		AdviceEventsEnabled: adviceEnabled,
		KafkaBrokers:        brokers,
		KafkaAdviceTopic:    sharedcfg.EnvOrDefault("KAFKA_ADVICE_TOPIC", "activity-advice-events"),
	}

	if cfg.OpenWeatherAPIKey == "" {
		return nil, errors.New("OPENWEATHER_API_KEY is required")
	}
	if cfg.AdviceEventsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("ADVICE_EVENTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.AdviceEventsEnabled && cfg.KafkaAdviceTopic == "" {
		return nil, errors.New("KAFKA_ADVICE_TOPIC is required")
	}

	return cfg, nil
}
