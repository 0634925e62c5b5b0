// Package config reads server settings from QUIZDECK_* environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DevSecret signs tokens when QUIZDECK_AUTH_SECRET is unset.
const DevSecret = "quizdeck-dev-secret"

type Config struct {
	HTTPAddr string

	// DBDriver is "sqlite" or "postgres". An empty DBDSN selects the
	// default SQLite file.
	DBDriver string
	DBDSN    string

	AuthSecret  string
	TokenTTL    time.Duration
	CORSOrigins []string

	GenerationCooldown time.Duration
	MaxUploadBytes     int64

	// SessionTTL evicts API play sessions idle for longer than this.
	SessionTTL time.Duration

	RequestTimeout time.Duration

	// Dev allows serving with DevSecret. Set by QUIZDECK_DEV or --dev.
	Dev bool
}

// ErrDevSecret is returned by CheckAuthSecret when a server would sign
// tokens with the public development secret.
var ErrDevSecret = errors.New("QUIZDECK_AUTH_SECRET is not set; set it or pass --dev to use the development secret")

func FromEnv() Config {
	return Config{
		HTTPAddr:           envOr("QUIZDECK_HTTP_ADDR", ":8080"),
		DBDriver:           envOr("QUIZDECK_DB_DRIVER", "sqlite"),
		DBDSN:              envOr("QUIZDECK_DB_DSN", ""),
		AuthSecret:         envOr("QUIZDECK_AUTH_SECRET", DevSecret),
		TokenTTL:           envDuration("QUIZDECK_TOKEN_TTL", 24*time.Hour),
		CORSOrigins:        csvOr("QUIZDECK_CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		GenerationCooldown: envDuration("QUIZDECK_GENERATION_COOLDOWN", 10*time.Minute),
		MaxUploadBytes:     int64(envInt("QUIZDECK_MAX_UPLOAD_MB", 20)) << 20,
		SessionTTL:         envDuration("QUIZDECK_SESSION_TTL", 2*time.Hour),
		RequestTimeout:     envDuration("QUIZDECK_REQUEST_TIMEOUT", 5*time.Minute),
		Dev:                envBool("QUIZDECK_DEV"),
	}
}

// UsesDevSecret reports whether tokens are signed with the built-in secret.
func (c Config) UsesDevSecret() bool {
	return c.AuthSecret == DevSecret
}

// CheckAuthSecret refuses DevSecret outside dev mode.
func (c Config) CheckAuthSecret() error {
	if c.UsesDevSecret() && !c.Dev {
		return ErrDevSecret
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func envBool(k string) bool {
	b, err := strconv.ParseBool(os.Getenv(k))
	return err == nil && b
}

// envDuration accepts Go durations ("90s", "10m"). "0" disables the setting.
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if v == "0" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
