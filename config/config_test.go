package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_USER", "olive")
	t.Setenv("POSTGRES_PASSWORD", "s3cret")
	t.Setenv("POSTGRES_DB", "olive")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("AWS_USE_SECRETS", "false")
	t.Setenv("DASHBOARD_TIMEZONE", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.UTC, cfg.DashboardLocation)
	assert.Equal(t, "postgres://olive:s3cret@db:5432/olive?sslmode=disable", cfg.DSN())
}

func TestLoad_MissingSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoad_MissingDatabase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("POSTGRES_USER", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DASHBOARD_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@h:1/d")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example.com/, https://admin.example.com")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("DASHBOARD_TIMEZONE", "America/Sao_Paulo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@h:1/d", cfg.DSN())
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, "America/Sao_Paulo", cfg.DashboardLocation.String())
}

func TestOverrideDBCredentials(t *testing.T) {
	cfg := &Config{PostgresUser: "env-user", PostgresHost: "env-host"}
	overrideDBCredentials(cfg, map[string]string{"POSTGRES_USER": "secret-user", "POSTGRES_HOST": ""})

	assert.Equal(t, "secret-user", cfg.PostgresUser)
	assert.Equal(t, "env-host", cfg.PostgresHost)
}
