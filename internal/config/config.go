package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/logger"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	AppPort     string
	Store       string
	DatabaseURL string
	AutoMigrate bool
	JWTSecret   string
	TokenTTL    time.Duration

	LogLevel string
	LogJSON  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// empty means any origin
	AllowedOrigins []string

	// at least one assignee is needed to create a task
	RequireAssignee bool
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := FromEnv(os.Getenv)

	if cfg.Store == StorePostgres && cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}
	return cfg
}

// FromEnv builds a Config from a lookup function without validating required keys.
func FromEnv(getenv func(string) string) *Config {
	store := strings.ToLower(strings.TrimSpace(getenv("STORE")))
	if store != StoreMemory {
		store = StorePostgres
	}

	port := getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	var origins []string
	for _, o := range strings.Split(getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		AppPort:         port,
		Store:           store,
		DatabaseURL:     getenv("DATABASE_URL"),
		AutoMigrate:     getenv("AUTO_MIGRATE") != "false",
		JWTSecret:       getenv("JWT_SECRET"),
		TokenTTL:        time.Duration(positiveInt(getenv("TOKEN_TTL_HOURS"), 24)) * time.Hour,
		LogLevel:        logLevel,
		LogJSON:         getenv("LOG_JSON") == "true",
		RedisAddr:       getenv("REDIS_ADDR"),
		RedisPassword:   getenv("REDIS_PASSWORD"),
		RedisDB:         nonNegativeInt(getenv("REDIS_DB"), 0),
		APIRateLimit:    positiveInt(getenv("API_RATE_LIMIT"), 120),
		APIRateWindow:   time.Duration(positiveInt(getenv("API_RATE_WINDOW_SECONDS"), 60)) * time.Second,
		AuthRateLimit:   positiveInt(getenv("AUTH_RATE_LIMIT"), 10),
		AuthRateWindow:  time.Duration(positiveInt(getenv("AUTH_RATE_WINDOW_SECONDS"), 60)) * time.Second,
		AllowedOrigins:  origins,
		RequireAssignee: getenv("REQUIRE_ASSIGNEE") == "true",
	}
}

func positiveInt(v string, def int) int {
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return def
}

func nonNegativeInt(v string, def int) int {
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return n
	}
	return def
}
