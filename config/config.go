package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Generation provider configuration
	GenerationAPIKey  string
	GenerationAPIURL  string
	GenerationModel   string
	GenerationTimeout time.Duration

	// Datastore configuration
	DatastoreURL string
	DatastoreKey string

	// Session configuration
	RedisURL   string
	SessionTTL time.Duration
	TokenTTL   time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Optional recipe image bucket
	S3BucketName string
	AWSRegion    string
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v, env)

	cfg := &Config{
		ServerPort:        v.GetString("SERVER_PORT"),
		ServerHost:        v.GetString("SERVER_HOST"),
		AllowedOrigins:    splitList(v.GetString("ALLOWED_ORIGINS")),
		GenerationAPIURL:  v.GetString("GENERATION_API_URL"),
		GenerationModel:   v.GetString("GENERATION_MODEL"),
		GenerationTimeout: v.GetDuration("GENERATION_TIMEOUT"),
		RedisURL:          v.GetString("REDIS_URL"),
		SessionTTL:        v.GetDuration("SESSION_TTL"),
		TokenTTL:          v.GetDuration("TOKEN_TTL"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		S3BucketName:      v.GetString("S3_BUCKET_NAME"),
		AWSRegion:         v.GetString("AWS_REGION"),
	}

	// Secrets come from the environment in CI and fall back to Docker secrets elsewhere
	cfg.GenerationAPIKey = secretValue(v, env, "GENERATION_API_KEY")
	cfg.DatastoreURL = secretValue(v, env, "DATASTORE_URL")
	cfg.DatastoreKey = secretValue(v, env, "DATASTORE_KEY")

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, env Environment) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("GENERATION_API_URL", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("GENERATION_MODEL", "gpt-4o")
	v.SetDefault("GENERATION_TIMEOUT", 30*time.Second)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	if env == Production {
		v.SetDefault("LOG_FORMAT", "json")
	} else {
		v.SetDefault("LOG_FORMAT", "console")
	}
}

func secretValue(v *viper.Viper, env Environment, key string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" || env == CI {
		return value
	}
	return readSecret(strings.ToLower(key))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
