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
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 60, cfg.IPLimitPerMin)
	assert.Equal(t, 30, cfg.AnalyzeLimitPerMin)
	assert.Len(t, cfg.CORSOrigins, 7)
	assert.Contains(t, cfg.CORSOrigins, "http://127.0.0.1:5500")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POSTURE_ADDR", ":9001")
	t.Setenv("POSTURE_IP_LIMIT_PER_MIN", "120")
	t.Setenv("POSTURE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.Addr)
	assert.Equal(t, 120, cfg.IPLimitPerMin)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9100\"\ncache_ttl: 5m\n"), 0o644))
	t.Setenv("POSTURE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9100\"\n"), 0o644))
	t.Setenv("POSTURE_CONFIG", path)
	t.Setenv("POSTURE_ADDR", ":9200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9200", cfg.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("POSTURE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidGzipLevel(t *testing.T) {
	t.Setenv("POSTURE_GZIP_LEVEL", "12")

	_, err := Load()
	assert.Error(t, err)
}
