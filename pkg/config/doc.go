// Package config provides configuration management for the Jellygram application.
//
// Configuration is loaded from environment variables with sensible defaults.
// The package supports:
//   - Jellyfin server URL and API key
//   - Telegram bot token and target chat
//   - Trakt API key for trailer lookups (optional)
//   - Notification filtering windows for episodes and seasons
//   - Data directory and HTTP server settings
//
// All configuration values are validated during startup to ensure
// the application has the required settings to function properly.
package config
