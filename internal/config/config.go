// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Tables names the DynamoDB table behind each collection.
type Tables struct {
	Products     string
	Services     string
	Orders       string
	Bookings     string
	BookingSlots string
	Blog         string
	Contact      string
}

// Config is the resolved runtime configuration. It is built once at
// startup and passed to constructors.
type Config struct {
	Env       string
	RunLocal  bool
	HTTPAddr  string
	APIPrefix string

	AdminEmail        string
	AdminName         string
	AdminPassword     string
	AdminPasswordHash string

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	Tables Tables

	EventsQueueURL   string
	MetricsNamespace string
	CORSOrigins      []string

	LogLevel string
	LogFile  string
}

// Production reports whether APP_ENV is production.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads the environment. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	ttlMinutes, err := cast.ToIntE(env("TOKEN_TTL_MINUTES", "480"))
	if err != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_MINUTES must be a positive integer, got %q", os.Getenv("TOKEN_TTL_MINUTES"))
	}
	runLocal, err := cast.ToBoolE(env("RUN_LOCAL", "false"))
	if err != nil {
		return nil, fmt.Errorf("RUN_LOCAL: %w", err)
	}

	cfg := &Config{
		Env:       env("APP_ENV", "development"),
		RunLocal:  runLocal,
		HTTPAddr:  env("HTTP_ADDR", ":8080"),
		APIPrefix: env("API_PREFIX", "/api"),

		AdminEmail:        strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminName:         env("ADMIN_NAME", "Amministratore"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: os.Getenv("JWT_ISSUER"),
		TokenTTL:  time.Duration(ttlMinutes) * time.Minute,

		Tables: TablesFromEnv(),

		EventsQueueURL:   os.Getenv("EVENTS_QUEUE_URL"),
		MetricsNamespace: env("METRICS_NAMESPACE", "Storefront"),
		CORSOrigins:      splitList(env("CORS_ORIGINS", "*")),

		LogLevel: env("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
	}

	switch {
	case cfg.AdminEmail == "":
		return nil, errors.New("ADMIN_EMAIL is required")
	case cfg.AdminPassword == "" && cfg.AdminPasswordHash == "":
		return nil, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	case cfg.JWTSecret == "":
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

// TablesFromEnv resolves the table names, falling back to the defaults.
func TablesFromEnv() Tables {
	return Tables{
		Products:     env("PRODUCTS_TABLE", "products"),
		Services:     env("SERVICES_TABLE", "services"),
		Orders:       env("ORDERS_TABLE", "orders"),
		Bookings:     env("BOOKINGS_TABLE", "bookings"),
		BookingSlots: env("BOOKING_SLOTS_TABLE", "booking_slots"),
		Blog:         env("BLOG_TABLE", "blog_posts"),
		Contact:      env("CONTACT_TABLE", "contact_messages"),
	}
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// WorkerConfig is the subset of settings used by the event worker, which
// holds no admin credentials.
type WorkerConfig struct {
	Env              string
	RunLocal         bool
	MetricsNamespace string
	LogLevel         string
	LogFile          string
}

// LoadWorker reads the worker settings. A missing .env file is not an error.
func LoadWorker() (*WorkerConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	runLocal, err := cast.ToBoolE(env("RUN_LOCAL", "false"))
	if err != nil {
		return nil, fmt.Errorf("RUN_LOCAL: %w", err)
	}
	return &WorkerConfig{
		Env:              env("APP_ENV", "development"),
		RunLocal:         runLocal,
		MetricsNamespace: env("METRICS_NAMESPACE", "Storefront"),
		LogLevel:         env("LOG_LEVEL", "info"),
		LogFile:          os.Getenv("LOG_FILE"),
	}, nil
}
