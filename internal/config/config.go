package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Server  ServerConfig
	Session SessionConfig
	Redis   RedisConfig
	Convert ConvertConfig
}

type ServerConfig struct {
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins string
}

type SessionConfig struct {
	CookieName string
	Secret     string
	Backend    string
	TTL        time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ConvertConfig struct {
	MaxFileSize int64
	PageDPI     int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:       getDuration("WRITE_TIMEOUT", 30*time.Second),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "image2pdf_session"),
			Secret:     getEnv("SESSION_SECRET", "dev-only-secret"),
			Backend:    getEnv("SESSION_BACKEND", SessionBackendMemory),
			TTL:        getDuration("SESSION_TTL", 2*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Convert: ConvertConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 20*1024*1024), // 20MB per image
			PageDPI:     getEnvAsInt("PAGE_DPI", 100),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q",
			SessionBackendMemory, SessionBackendRedis, c.Session.Backend)
	}
	if c.Convert.PageDPI <= 0 {
		return fmt.Errorf("PAGE_DPI must be positive, got %d", c.Convert.PageDPI)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}
