package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	IncidentCacheTTL time.Duration `env:"INCIDENT_CACHE_TTL" envDefault:"5m"`
	DraftTTL         time.Duration `env:"DRAFT_TTL" envDefault:"1h"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Authenticity validator (Gemini)
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	AITimeout    time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`

	// Geolocation providers
	GoogleMapsAPIKey string        `env:"GOOGLE_MAPS_API_KEY"`
	UnwiredAPIKey    string        `env:"UNWIRED_API_KEY"`
	UnwiredURL       string        `env:"UNWIRED_URL" envDefault:"https://us1.unwiredlabs.com/v2/process.php"`
	GeoTimeout       time.Duration `env:"GEO_TIMEOUT" envDefault:"10s"`

	// Map tiles
	StadiaMapsAPIKey string `env:"STADIA_MAPS_API_KEY"`

	// Crowd verification policy
	VerifyConfirmThreshold    int `env:"VERIFY_CONFIRM_THRESHOLD" envDefault:"3"`
	VerifyFalseThreshold      int `env:"VERIFY_FALSE_THRESHOLD" envDefault:"3"`
	VerificationWindowMinutes int `env:"VERIFY_WINDOW_MINUTES" envDefault:"60"`

	// Feed
	FeedMissingLocationLast bool    `env:"FEED_MISSING_LOCATION_LAST" envDefault:"false"`
	DefaultViewerLat        float64 `env:"DEFAULT_VIEWER_LAT" envDefault:"19.0760"`
	DefaultViewerLon        float64 `env:"DEFAULT_VIEWER_LON" envDefault:"72.8777"`

	// API Keys for moderators
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:               os.Getenv("DATABASE_URL"),
		DBMaxConns:                int32(getEnvAsInt("DB_MAX_CONNS", 10)),
		HTTPPort:                  getEnv("HTTP_PORT", "8080"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		RedisAddr:                 getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                 os.Getenv("REDIS_PASSWORD"),
		RedisDB:                   getEnvAsInt("REDIS_DB", 0),
		IncidentCacheTTL:          getEnvAsDuration("INCIDENT_CACHE_TTL", 5*time.Minute),
		DraftTTL:                  getEnvAsDuration("DRAFT_TTL", time.Hour),
		WebhookURL:                os.Getenv("WEBHOOK_URL"),
		WebhookSecret:             os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:            getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:         getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:          getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		GeminiAPIKey:              os.Getenv("GEMINI_API_KEY"),
		GeminiModel:               getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AITimeout:                 getEnvAsDuration("AI_TIMEOUT", 30*time.Second),
		GoogleMapsAPIKey:          os.Getenv("GOOGLE_MAPS_API_KEY"),
		UnwiredAPIKey:             os.Getenv("UNWIRED_API_KEY"),
		UnwiredURL:                getEnv("UNWIRED_URL", "https://us1.unwiredlabs.com/v2/process.php"),
		GeoTimeout:                getEnvAsDuration("GEO_TIMEOUT", 10*time.Second),
		StadiaMapsAPIKey:          os.Getenv("STADIA_MAPS_API_KEY"),
		VerifyConfirmThreshold:    getEnvAsInt("VERIFY_CONFIRM_THRESHOLD", 3),
		VerifyFalseThreshold:      getEnvAsInt("VERIFY_FALSE_THRESHOLD", 3),
		VerificationWindowMinutes: getEnvAsInt("VERIFY_WINDOW_MINUTES", 60),
		FeedMissingLocationLast:   getEnvAsBool("FEED_MISSING_LOCATION_LAST", false),
		DefaultViewerLat:          getEnvAsFloat("DEFAULT_VIEWER_LAT", 19.0760),
		DefaultViewerLon:          getEnvAsFloat("DEFAULT_VIEWER_LON", 72.8777),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.VerifyConfirmThreshold < 1 || cfg.VerifyFalseThreshold < 1 {
		return nil, fmt.Errorf("verification thresholds must be positive")
	}
	if cfg.VerificationWindowMinutes < 1 {
		return nil, fmt.Errorf("VERIFY_WINDOW_MINUTES must be positive")
	}

	return cfg, nil
}

// VerificationWindow возвращает окно подсчета голосов в виде time.Duration
func (c *Config) VerificationWindow() time.Duration {
	return time.Duration(c.VerificationWindowMinutes) * time.Minute
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
