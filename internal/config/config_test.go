package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "DATABASE_URL", "JWKS_URL", "CORS_ORIGINS", "TABLE_PREFIX", "LOG_DIR", "LOG_MAX_FILES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "dev_", cfg.TablePrefix)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.LogMaxFiles)
	assert.False(t, cfg.AuthEnabled())
	assert.True(t, cfg.IsDev())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("JWKS_URL", "https://auth.example/jwks.json")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("LOG_MAX_FILES", "not-a-number")

	cfg := Load()

	assert.Equal(t, "prod_", cfg.TablePrefix)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, 10, cfg.LogMaxFiles)
}

func TestLoad_TablePrefixNone(t *testing.T) {
	t.Setenv("TABLE_PREFIX", "none")
	assert.Equal(t, "", Load().TablePrefix)
}

func TestCleanupOldLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"server-2026-01-01T00-00-00.000.log",
		"server-2026-01-02T00-00-00.000.log",
		"server-2026-01-03T00-00-00.000.log",
		"other-2026-01-01T00-00-00.000.log",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	require.NoError(t, cleanupOldLogs(dir, "server", 2))

	remaining, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "server-2026-01-02T00-00-00.000.log"),
		filepath.Join(dir, "server-2026-01-03T00-00-00.000.log"),
		filepath.Join(dir, "other-2026-01-01T00-00-00.000.log"),
	}, remaining)
}
