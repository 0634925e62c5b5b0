package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"QUIZDECK_HTTP_ADDR", "QUIZDECK_DB_DRIVER", "QUIZDECK_DB_DSN", "QUIZDECK_AUTH_SECRET",
		"QUIZDECK_CORS_ORIGINS", "QUIZDECK_GENERATION_COOLDOWN", "QUIZDECK_MAX_UPLOAD_MB", "QUIZDECK_SESSION_TTL", "QUIZDECK_DEV",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.True(t, cfg.UsesDevSecret())
	assert.False(t, cfg.Dev)
	assert.Equal(t, 10*time.Minute, cfg.GenerationCooldown)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
	assert.Len(t, cfg.CORSOrigins, 2)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("QUIZDECK_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("QUIZDECK_DB_DRIVER", "postgres")
	t.Setenv("QUIZDECK_AUTH_SECRET", "prod")
	t.Setenv("QUIZDECK_CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("QUIZDECK_GENERATION_COOLDOWN", "0")
	t.Setenv("QUIZDECK_MAX_UPLOAD_MB", "5")
	t.Setenv("QUIZDECK_SESSION_TTL", "bogus")

	cfg := FromEnv()
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.False(t, cfg.UsesDevSecret())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.GenerationCooldown)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestCheckAuthSecret(t *testing.T) {
	cases := []struct {
		name    string
		secret  string
		dev     string
		wantErr bool
	}{
		{"unset secret refused", "", "", true},
		{"unset secret with QUIZDECK_DEV=1", "", "1", false},
		{"unset secret with QUIZDECK_DEV=true", "", "true", false},
		{"unparseable dev flag", "", "yes", true},
		{"explicit secret", "s3cret", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("QUIZDECK_AUTH_SECRET", tc.secret)
			t.Setenv("QUIZDECK_DEV", tc.dev)

			err := FromEnv().CheckAuthSecret()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrDevSecret)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
