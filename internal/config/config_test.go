package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	// keep a stray .env in the package directory out of the picture
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(home))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestLoadConfig_CreatesDefault(t *testing.T) {
	home := isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, filepath.Join(home, "data", "ccgcatalog", "data"), cfg.DataDir)
	assert.FileExists(t, GetConfigFilePath())
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileValues(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "/srv/catalog"

[server]
port = 9000

[display]
view = "list"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/catalog", cfg.DataDir)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "list", cfg.Display.View)
	assert.Equal(t, 60, cfg.Display.PageSize, "unset keys keep their defaults")
	assert.InDelta(t, 0.3, cfg.Search.Threshold, 1e-9)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CCGCATALOG_SERVER__PORT", "9191")
	t.Setenv("CCGCATALOG_DATA_DIR", "/tmp/cards")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "/tmp/cards", cfg.DataDir)
	assert.True(t, cfg.Server.WatchData)
}

func TestLoad_DotEnv(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"), []byte("CCGCATALOG_SEARCH__THRESHOLD=0.45\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("CCGCATALOG_SEARCH__THRESHOLD") })

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.InDelta(t, 0.45, cfg.Search.Threshold, 1e-9)
}

func TestSetDataDir(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	require.NoError(t, SetDataDir(GetConfigFilePath(), dir))
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)

	assert.Error(t, SetDataDir(GetConfigFilePath(), filepath.Join(dir, "missing")))

	other := filepath.Join(t.TempDir(), "other.toml")
	require.NoError(t, SetDataDir(other, t.TempDir()))
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir, "only the named file changes")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Display.View = "table"
	assert.ErrorContains(t, cfg.Validate(), "invalid display view")

	cfg = Default()
	cfg.Search.Threshold = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Search.MaxResults = -1
	assert.Error(t, cfg.Validate())
}

func TestResolveDataDir(t *testing.T) {
	cfg := &Config{DataDir: "/configured"}
	assert.Equal(t, "/flag", cfg.ResolveDataDir("/flag"))
	assert.Equal(t, "/configured", cfg.ResolveDataDir(""))
}
