package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is the environment-driven configuration shared by cmd/server and cmd/seed
type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWKSURL     string // empty disables bearer-token auth
	CORSOrigins []string
	TablePrefix string
	LogDir      string // empty keeps logs on stdout only
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWKSURL:     getEnv("JWKS_URL", ""),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		TablePrefix: getTablePrefix(env),
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
	}
}

// AuthEnabled reports whether requests must carry a verified bearer token
func (c *Config) AuthEnabled() bool {
	return c.JWKSURL != ""
}

// IsDev reports whether the server runs in the development environment
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// TABLE_PREFIX overrides, including an explicit "none"
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		if prefix == "none" {
			return ""
		}
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
