package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	GroqKey      string
	GroqEndpoint string
	GroqModel    string
	Database     string
	UploadDir    string
	Port         string
}

// Load reads configuration from the environment, providing sensible defaults.
func Load() Config {
	// Load .env file if it exists (useful for development)
	_ = godotenv.Load()
	cfg := Config{
		GroqKey:      os.Getenv("GROQ_API_KEY"),
		GroqEndpoint: getEnv("GROQ_API_ENDPOINT", "https://api.groq.com/openai/v1"),
		GroqModel:    getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		Database:     getEnv("DATABASE_PATH", "./data/studycards.db"),
		UploadDir:    getEnv("UPLOAD_DIR", "./data/uploads"),
		Port:         getEnv("PORT", "5000"),
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logrus.WithError(err).Fatalf("ensure upload dir %s", cfg.UploadDir)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0o755); err != nil {
		logrus.WithError(err).Fatalf("ensure database dir %s", cfg.Database)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
