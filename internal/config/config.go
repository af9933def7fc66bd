package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	Addr         string
	DataDir      string
	DatabasePath string

	// Optional shared secret for the API. When empty the API is open,
	// which is the expected mode for a dashboard bound to localhost.
	AuthSecret string

	// Optional server-side Gemini key, used when a request does not
	// carry its own.
	GeminiAPIKey string

	// Telegram Config (required for the bot binary only)
	TelegramBotToken    string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is honored when present.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	addr := os.Getenv("TEACHERDASH_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dataDir := os.Getenv("TEACHERDASH_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	dbPath := os.Getenv("TEACHERDASH_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "teacherdash.db")
	}

	allowUserIDStr := os.Getenv("TELEGRAM_ALLOW_USER_ID")
	var allowUserID int64
	if allowUserIDStr != "" {
		if _, err := fmt.Sscanf(allowUserIDStr, "%d", &allowUserID); err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_ID %q: %w", allowUserIDStr, err)
		}
	}

	return &Config{
		Addr:                addr,
		DataDir:             dataDir,
		DatabasePath:        dbPath,
		AuthSecret:          os.Getenv("TEACHERDASH_AUTH_SECRET"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAllowUserID: allowUserID,
	}, nil
}
