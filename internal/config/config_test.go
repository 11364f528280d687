package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("SUPABASE_JWT_SECRET", "jwt-secret")
}

func TestLoad(t *testing.T) {
	t.Run("DefaultsApply", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, Development, cfg.Environment)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, "downloads", cfg.Storage.Bucket)
		assert.Equal(t, 60*time.Second, cfg.Storage.SignedURLTTL)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("EnvironmentVariablesWin", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("PORT", "9000")
		t.Setenv("SIGNED_URL_TTL", "5m")
		t.Setenv("ALLOWED_ORIGINS", "https://mathsclasses.app, https://staging.mathsclasses.app")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, Production, cfg.Environment)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, 5*time.Minute, cfg.Storage.SignedURLTTL)
		assert.Equal(t, []string{"https://mathsclasses.app", "https://staging.mathsclasses.app"}, cfg.Server.AllowedOrigins)
	})

	t.Run("MissingCredentialsFailValidation", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "")
		t.Setenv("SUPABASE_ANON_KEY", "")
		t.Setenv("SUPABASE_JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("UnknownEnvironmentRejected", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ENVIRONMENT", "qa")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown environment")
	})

	t.Run("BadLogLevelRejected", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("YAMLOverlayBelowEnvironment", func(t *testing.T) {
		setRequiredEnv(t)

		dir := t.TempDir()
		path := filepath.Join(dir, "local.yaml")
		overlay := `
server:
  port: 7070
storage:
  bucket: lesson-files
logging:
  level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("PORT", "9999")

		cfg, err := Load()
		require.NoError(t, err)

		// File supplied the bucket and log level, env var still wins on port.
		assert.Equal(t, 9999, cfg.Server.Port)
		assert.Equal(t, "lesson-files", cfg.Storage.Bucket)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})
}
