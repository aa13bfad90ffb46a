package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Collaborator.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Collaborator.DefaultModel)
	assert.Empty(t, cfg.Collaborator.FallbackModels)
	assert.Equal(t, "sqlite", cfg.Preference.Driver)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxBytes())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BRIDGE_COLLABORATOR_DEFAULT_MODEL", "gemini-2.5-pro")
	t.Setenv("BRIDGE_COLLABORATOR_FALLBACK_MODELS", "gemini-2.5-flash, gemini-2.0-flash,")
	t.Setenv("BRIDGE_PREFERENCE_DRIVER", "redis")
	t.Setenv("BRIDGE_CORS_ALLOWED_ORIGINS", "https://bridge.example.org")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", cfg.Collaborator.DefaultModel)
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.0-flash"}, cfg.Collaborator.FallbackModels)
	assert.Equal(t, "redis", cfg.Preference.Driver)
	assert.Equal(t, []string{"https://bridge.example.org"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)

	t.Setenv("BRIDGE_SERVER_PORT", ":7000")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "bridge", Password: "pw", Name: "bridge_db", SSLMode: "disable"}

	assert.Equal(t, "postgres://bridge:pw@db:5432/bridge_db?sslmode=disable", db.DSN())
}
