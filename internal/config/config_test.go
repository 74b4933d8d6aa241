package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "POLYTRANS_SERVER_REGION", "POLYTRANS_DEFAULT_PROVIDER", "POLYTRANS_WORKERS",
		"POLYTRANS_MAX_RETRIES", "CACHE_TTL_SECONDS", "OPENAI_API_KEY")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "EN", cfg.ServerRegion)
	assert.Equal(t, "google", cfg.DefaultProvider)
	assert.Equal(t, 86400, cfg.CacheTTLSeconds)

	pc := cfg.ProviderConfig()
	assert.Equal(t, "EN", pc.Region)
	assert.Empty(t, pc.OpenAI.APIKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("POLYTRANS_SERVER_REGION", "cn")
	t.Setenv("POLYTRANS_WORKERS", "4")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "CN", cfg.ServerRegion)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "sk-test", cfg.ProviderConfig().OpenAI.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("POLYTRANS_SERVER_REGION", "MARS")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("POLYTRANS_SERVER_REGION", "EN")
	t.Setenv("POLYTRANS_WORKERS", "-1")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("POLYTRANS_WORKERS", "many")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("POLYTRANS_DEFAULT_PROVIDER=lingva\n"), 0o600))
	t.Setenv("POLYTRANS_DEFAULT_PROVIDER", "google")

	require.NoError(t, LoadEnvFile(path))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "lingva", cfg.DefaultProvider)

	assert.NoError(t, LoadEnvFile(""))
	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
