package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPort      = "8080"
	DefaultPublicDir = "data/public"
	DefaultRateLimit = 120
	DefaultBodyLimit = 4 * 1024 * 1024
)

type Config struct {
	Port         string
	PublicDir    string
	DatabaseURL  string
	LogLevel     string
	LogFormat    string
	Debug        bool
	RateLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	return &Config{
		Port:         getEnv("PORT", DefaultPort),
		PublicDir:    getEnv("PUBLIC_DIR", DefaultPublicDir),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "json")),
		Debug:        getEnvBool("DEBUG", false),
		RateLimit:    getEnvInt("RATE_LIMIT", DefaultRateLimit),
		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  getEnvDuration("IDLE_TIMEOUT", 60*time.Second),
		BodyLimit:    getEnvInt("BODY_LIMIT", DefaultBodyLimit),
	}
}

func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("Invalid integer in environment, using default")
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("Invalid boolean in environment, using default")
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("Invalid duration in environment, using default")
		return fallback
	}
	return value
}
