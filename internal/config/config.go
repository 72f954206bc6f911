// Package config loads service configuration once at process start. The
// resulting value is passed explicitly into the components that need it;
// nothing reads the environment after startup.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultModel is the Gemini model used for extraction and transcription
// unless GEMINI_MODEL overrides it.
const DefaultModel = "gemini-2.5-flash"

// Config holds the read-only runtime configuration.
type Config struct {
	// Port the API server listens on.
	Port string

	// GeminiAPIKey authenticates calls to the extraction and transcription
	// collaborators. Required for the server; plain-text CLI runs can work
	// without it.
	GeminiAPIKey string

	// GeminiModel is the model name for both collaborators.
	GeminiModel string

	// SessionTTL is how long assembled ledgers stay retrievable.
	SessionTTL time.Duration
}

// Load reads configuration from the environment. A .env file is applied
// first when present so local runs do not need exported variables.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         getenv("PORT", "8080"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL", DefaultModel),
		SessionTTL:   getenvDuration("SESSION_TTL", 30*time.Minute),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
