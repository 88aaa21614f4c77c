package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort         string
	AppMode         string
	LogMode         string
	ClientNames     []string
	ShutdownTimeout time.Duration
	EventsEnabled   bool
	EventsPrefix    string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		AppMode:         getEnv("APP_MODE", "debug"),
		LogMode:         getEnv("LOG_MODE", "development"),
		ClientNames:     splitList(getEnv("CLIENT_NAMES", "demo")),
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SEC", 5)) * time.Second,
		EventsEnabled:   getEnvAsBool("EVENTS_ENABLED", false),
		EventsPrefix:    getEnv("EVENTS_CHANNEL_PREFIX", "agreedisagree"),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	if len(c.ClientNames) == 0 {
		return fmt.Errorf("CLIENT_NAMES must list at least one client")
	}
	seen := make(map[string]struct{}, len(c.ClientNames))
	for _, name := range c.ClientNames {
		if strings.Contains(name, "/") {
			return fmt.Errorf("client name %q must not contain '/'", name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("client name %q listed twice", name)
		}
		seen[name] = struct{}{}
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SEC must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
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
