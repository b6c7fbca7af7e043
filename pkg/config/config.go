package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string `json:"port" validate:"required"`
	Host string `json:"host"`

	// Storage configuration
	DataDir string `json:"data_dir" validate:"required"`

	// Jellyfin configuration
	JellyfinBaseURL string `json:"jellyfin_base_url" validate:"required,url"`
	JellyfinAPIKey  string `json:"jellyfin_api_key" validate:"required"`

	// Telegram configuration
	TelegramBotToken string `json:"telegram_bot_token" validate:"required"`
	TelegramChatID   int64  `json:"telegram_chat_id" validate:"required"`

	// Trakt configuration (trailer lookup; optional)
	TraktAPIKey string `json:"trakt_api_key,omitempty"`

	// Filtering windows
	EpisodePremieredWithinDays int `json:"episode_premiered_within_days"`
	SeasonAddedWithinDays      int `json:"season_added_within_days"`

	// Application settings
	RequestTimeout int `json:"request_timeout"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:                       getEnvOrDefault("PORT", "5000"),
		Host:                       getEnvOrDefault("HOST", "0.0.0.0"),
		TraktAPIKey:                os.Getenv("TRAKT_API_KEY"),
		EpisodePremieredWithinDays: getEnvIntOrDefault("EPISODE_PREMIERED_WITHIN_X_DAYS", 7),
		SeasonAddedWithinDays:      getEnvIntOrDefault("SEASON_ADDED_WITHIN_X_DAYS", 3),
		RequestTimeout:             getEnvIntOrDefault("REQUEST_TIMEOUT", 30),
	}

	// Required environment variables
	var err error
	if config.DataDir, err = getRequiredEnv("DATA_DIR"); err != nil {
		return nil, err
	}
	if config.JellyfinBaseURL, err = getRequiredEnv("JELLYFIN_BASE_URL"); err != nil {
		return nil, err
	}
	if config.JellyfinAPIKey, err = getRequiredEnv("JELLYFIN_API_KEY"); err != nil {
		return nil, err
	}
	if config.TelegramBotToken, err = getRequiredEnv("TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, err
	}
	if config.TelegramChatID, err = getRequiredEnvInt64("TELEGRAM_CHAT_ID"); err != nil {
		return nil, err
	}

	return config, nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Host + ":" + c.Port
}

// TrailerLookupEnabled reports whether a Trakt API key was configured
func (c *Config) TrailerLookupEnabled() bool {
	return c.TraktAPIKey != ""
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.JellyfinBaseURL == "" || c.JellyfinAPIKey == "" {
		return fmt.Errorf("jellyfin configuration is required")
	}
	if c.TelegramBotToken == "" || c.TelegramChatID == 0 {
		return fmt.Errorf("telegram configuration is required")
	}
	if c.EpisodePremieredWithinDays < 0 || c.SeasonAddedWithinDays < 0 {
		return fmt.Errorf("filtering windows must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// Helper functions
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getRequiredEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return value, nil
}

func getRequiredEnvInt64(key string) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, fmt.Errorf("required environment variable %s is not set", key)
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a valid integer: %w", key, err)
	}
	return intValue, nil
}
