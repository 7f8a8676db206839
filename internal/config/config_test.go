package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, OrdersSourceSeed, cfg.OrdersSource)
	assert.Equal(t, int64(1), cfg.AccountUserID)
	assert.Equal(t, "parola123", cfg.Identity.ReferencePassword)
	assert.False(t, cfg.NATS.Enabled)
	assert.Equal(t, time.Hour, cfg.SessionTTL())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_STORE", "valkey")
	t.Setenv("SESSION_TTL_MIN", "15")
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("VALKEY_DB", "not-a-number")
	t.Setenv("ACCOUNT_REFERENCE_PASSWORD", "altaParola")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SessionStoreValkey, cfg.SessionStore)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL())
	assert.True(t, cfg.NATS.Enabled)
	assert.Equal(t, 0, cfg.Valkey.DB, "bad ints fall back to the default")
	assert.Equal(t, "altaParola", cfg.Identity.ReferencePassword)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.SessionStore = "disk"
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.OrdersSource = "elastic"
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.Valkey.TTL = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadDotEnv_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_FORMAT=text\nGIN_MODE=release\n"), 0o600))

	t.Setenv("GIN_MODE", "test")
	t.Setenv("LOG_FORMAT", "")
	os.Unsetenv("LOG_FORMAT")

	LoadDotEnv(path, filepath.Join(dir, "missing.env"))
	t.Cleanup(func() { os.Unsetenv("LOG_FORMAT") })

	cfg := Load()
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "test", cfg.GinMode)
}
