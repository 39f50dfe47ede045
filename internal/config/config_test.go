package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_TIMEOUT", "3s")

	cfg := Load()
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
}

func TestLogFileIsOptIn(t *testing.T) {
	t.Setenv("LOG_FILE", "")
	assert.Empty(t, Load().LogFile, "stdout only unless LOG_FILE is set")

	t.Setenv("LOG_FILE", "/var/log/mulemobile.log")
	assert.Equal(t, "/var/log/mulemobile.log", Load().LogFile)
}

func TestLoadMockOverrides(t *testing.T) {
	t.Setenv("MOCK_PORT", "5999")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := LoadMock()
	assert.Equal(t, "5999", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "./web/media", cfg.MediaDir)
}
