// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds server configuration.
type Config struct {
	Port               int
	LogLevel           slog.Level
	StaticPath         string
	CORSAllowedOrigins []string
	MetricsEnabled     bool
	MetricsNamespace   string
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	port, err := parsePort(k.String("PORT"))
	if err != nil {
		return nil, err
	}
	level, err := ParseLevel(k.String("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	origins := splitAndTrim(k.String("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Config{
		Port:               port,
		LogLevel:           level,
		StaticPath:         strings.TrimSpace(k.String("STATIC_PATH")),
		CORSAllowedOrigins: origins,
		MetricsEnabled:     parseBool(k.String("METRICS_ENABLED"), true),
		MetricsNamespace:   valueOrDefault(k.String("METRICS_NAMESPACE"), "billsplit"),
	}, nil
}

// Addr returns the address the HTTP server should bind to.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty means info.
func ParseLevel(v string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", v)
	}
}

func parsePort(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 8080, nil
	}
	port, err := strconv.Atoi(v)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid PORT %q", v)
	}
	return port, nil
}

func parseBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

func valueOrDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func splitAndTrim(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
