package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/solver-slayer/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 256, cfg.Cache.MaxEntries)
	assert.Equal(t, runtime.NumCPU(), cfg.Sweep.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	content := `
[api]
port = 9090
cors_origins = ["https://example.com"]

[cache]
max_entries = 4

[sweep]
concurrency = 2

[logging]
level = "debug"
`
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, "127.0.0.1", cfg.API.Host, "unset keys keep defaults")
	assert.Equal(t, []string{"https://example.com"}, cfg.API.CORSOrigins)
	assert.Equal(t, 4, cfg.Cache.MaxEntries)
	assert.Equal(t, 2, cfg.Sweep.Concurrency)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[api\nport = "), 0o600))
	_, err := config.Load(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")

	badPort := filepath.Join(dir, "port.toml")
	require.NoError(t, os.WriteFile(badPort, []byte("[api]\nport = 70000\n"), 0o600))
	_, err = config.Load(badPort)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "server.toml")
	want := config.DefaultConfig()
	want.API.Port = 7070

	require.NoError(t, config.Save(path, want))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, got.API.Port)
	assert.Equal(t, want.Cache, got.Cache)
}

func TestLoad_ShippedExample(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "examples", "optimizer.toml"))
	require.NoError(t, err)

	defaults, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)
}
