package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `PORT=4000
ENVIRONMENT=development
VERSION=1.0.0
POSTGRES_HOST=localhost
POSTGRES_PORT=5432
POSTGRES_USER=bloglist
POSTGRES_PASSWORD=secret
POSTGRES_DB=bloglist
RABBITMQ_HOST=localhost
RABBITMQ_PORT=5672
RABBITMQ_USER=guest
RABBITMQ_PASSWORD=guest
MAIL_HOST=smtp.example.com
MAIL_PORT=587
MAIL_USER=mailer
MAIL_PASSWORD=secret
MAIL_SENDER=noreply@example.com
JWT_SECRET=super-secret-key
JWT_EXPIRY=2h
LIMITER_RPS=2
LIMITER_BURST=4
LIMITER_ENABLED=true
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "bloglist", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "bloglist", cfg.DBName)
	assert.Equal(t, "localhost", cfg.MQHost)
	assert.Equal(t, "guest", cfg.MQUser)
	assert.Equal(t, "smtp.example.com", cfg.MailHost)
	assert.Equal(t, 587, cfg.MailPort)
	assert.Equal(t, "noreply@example.com", cfg.MailSender)
	assert.Equal(t, "super-secret-key", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, float64(2), cfg.LimiterRPS)
	assert.Equal(t, 4, cfg.LimiterBurst)
	assert.True(t, cfg.LimiterEnabled)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	path := writeConfigFile(t, `PORT=4000
JWT_SECRET=
`)

	_, err := loadConfig(path)
	assert.EqualError(t, err, "JWT_SECRET must be set")
}

func TestLoadConfigDefaultExpiry(t *testing.T) {
	path := writeConfigFile(t, `PORT=4000
JWT_SECRET=super-secret-key
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
}
