package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/clinicdesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "ClinicDesk", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 5*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("AUTH_JWT_SECRET", "shh")
	t.Setenv("UPSTREAM_BASE_URL", "https://auth.example/api")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "postgres://postgres:secret@db:5432/clinicdesk?sslmode=require", cfg.ConnectionString())
	assert.Equal(t, "https://auth.example/api", cfg.Upstream.BaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), config.ErrMissingJWTSecret)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	_, err := config.Load()
	assert.Error(t, err)
}
