package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	TelegramToken  string
	ReplicateToken string

	LogLevel string
	Debug    bool

	PreferIPv4 bool

	MaxConcurrent  int
	RequestTimeout time.Duration
	HTTPTimeout    time.Duration

	ReplicateBaseURL string
	ReplicateModel   string
	PollInterval     time.Duration

	DefaultStyle       string
	DefaultAspectRatio string
	DefaultResolution  string
}

func Load() (Config, error) {
	cfg := Config{
		LogLevel:           strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
		Debug:              getEnvBool("DEBUG", false),
		PreferIPv4:         getEnvBool("PREFER_IPV4", true),
		MaxConcurrent:      getEnvInt("MAX_CONCURRENT", 4),
		RequestTimeout:     time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 120)) * time.Second,
		HTTPTimeout:        time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 120)) * time.Second,
		ReplicateBaseURL:   strings.TrimSpace(getEnv("REPLICATE_BASE_URL", "https://api.replicate.com")),
		ReplicateModel:     strings.TrimSpace(getEnv("REPLICATE_MODEL", "ideogram-ai/ideogram-v2a")),
		PollInterval:       time.Duration(getEnvInt("POLL_INTERVAL_MS", 1000)) * time.Millisecond,
		DefaultStyle:       strings.TrimSpace(getEnv("DEFAULT_STYLE", "None")),
		DefaultAspectRatio: strings.TrimSpace(getEnv("DEFAULT_ASPECT_RATIO", "1:1")),
		DefaultResolution:  strings.TrimSpace(getEnv("DEFAULT_RESOLUTION", "")),
	}

	cfg.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	cfg.ReplicateToken = strings.TrimSpace(os.Getenv("REPLICATE_API_TOKEN"))

	switch {
	case cfg.TelegramToken == "":
		return Config{}, errors.New("TELEGRAM_BOT_TOKEN is required")
	case cfg.ReplicateToken == "":
		return Config{}, errors.New("REPLICATE_API_TOKEN is required")
	}

	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 120 * time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 120 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
