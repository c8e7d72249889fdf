// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultPort = ":8080"

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Completion API (required in production).
	OpenAIKey     string
	OpenAIURL     string
	OpenAIModel   string
	OpenAITimeout int

	// Server
	Debug bool
	Port  string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "techlinter")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("OPENAI_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4")
	v.SetDefault("OPENAI_TIMEOUT_SECONDS", 30)
	v.SetDefault("DEBUG", false)

	cfg := &Config{
		DatabaseURL:   v.GetString("DATABASE_URL"),
		DBUser:        v.GetString("DB_USER"),
		DBPass:        v.GetString("DB_PASS"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		OpenAIKey:     v.GetString("OPENAI_API_KEY"),
		OpenAIURL:     v.GetString("OPENAI_URL"),
		OpenAIModel:   v.GetString("OPENAI_MODEL"),
		OpenAITimeout: v.GetInt("OPENAI_TIMEOUT_SECONDS"),
		Debug:         v.GetBool("DEBUG"),
		Port:          normalizePort(v.GetString("PORT")),
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.OpenAIKey == "" {
		log.Fatal("config: OPENAI_API_KEY must be set")
	}
}

// normalizePort returns the listen address for a PORT value, falling back
// to the default when the value is absent or not a valid port number.
func normalizePort(raw string) string {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), ":")
	if raw == "" {
		return defaultPort
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 65535 {
		return defaultPort
	}
	return ":" + raw
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}
