package config

import (
	"fmt"
	"os"

	"shopuploads/internal/pkg/validator"
)

// Config carries everything the service reads from the environment. It is
// loaded once in main and passed into constructors; nothing else reads env
// vars at request time.
type Config struct {
	UploadDir string `validate:"required"`
	EnvMode   string
	LogFile   string `validate:"required"`
	Port      string

	// DatabaseURL overrides the individual POSTGRESQL_DB_* parameters when set.
	DatabaseURL string

	Postgres struct {
		Host     string
		Database string
		Username string
		Password string
	}

	Mongo struct {
		URI      string `validate:"required"`
		Database string `validate:"required"`
	}
}

// Backend reports whether the service runs in backend mode, where handlers
// answer with JSON instead of rendered HTML.
func (c *Config) Backend() bool { return c.EnvMode == "backend" }

// DSN builds the catalog store DSN. DATABASE_URL wins when set; otherwise the
// four POSTGRESQL_DB_* parameters are combined. With no Postgres host at all
// the service falls back to a local SQLite file so it can run standalone.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.Postgres.Host == "" {
		return "shopuploads.db"
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Postgres.Username, c.Postgres.Password, c.Postgres.Host, c.Postgres.Database)
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.UploadDir = os.Getenv("UPLOAD_DIRECTORY")
	cfg.EnvMode = os.Getenv("ENV_MODE")
	cfg.LogFile = getEnv("LOG_FILE", "app.log")
	cfg.Port = getEnv("PORT", "8080")

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.Postgres.Host = os.Getenv("POSTGRESQL_DB_HOST")
	cfg.Postgres.Database = os.Getenv("POSTGRESQL_DB_DATABASE_NAME")
	cfg.Postgres.Username = os.Getenv("POSTGRESQL_DB_USERNAME")
	cfg.Postgres.Password = os.Getenv("POSTGRESQL_DB_PASSWORD")

	cfg.Mongo.URI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	cfg.Mongo.Database = getEnv("MONGODB_DATABASE", "file-uploads-db")

	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
