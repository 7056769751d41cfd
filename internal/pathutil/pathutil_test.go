package pathutil_test

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomatoclock/tomato/internal/pathutil"
)

func withXDG(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(dir, "run"))
	xdg.Reload()

	t.Cleanup(xdg.Reload)

	return dir
}

func TestNew(t *testing.T) {
	dir := withXDG(t)
	t.Setenv("TOMATO_ENV", "")

	p, err := pathutil.New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config", "tomato", "config.yml"), p.ConfigFilePath())
	assert.Equal(t, filepath.Join(dir, "data", "tomato", "tomato.db"), p.DBFilePath())
	assert.Equal(t, filepath.Join(dir, "data", "tomato", "state.json"), p.StateFilePath())
	assert.Equal(t, filepath.Join(dir, "data", "tomato", "waybar-output.json"), p.OutputFilePath())
	assert.Equal(t, filepath.Join(dir, "data", "tomato", "log", "tomato.log"), p.LogFilePath())
	assert.Equal(t, filepath.Join(dir, "run", "tomato", "tomato.sock"), p.SocketFilePath())
}

func TestNewWithEnvironment(t *testing.T) {
	dir := withXDG(t)
	t.Setenv("TOMATO_ENV", "dev")

	p, err := pathutil.New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config", "tomato", "config_dev.yml"), p.ConfigFilePath())
	assert.Equal(t, filepath.Join(dir, "data", "tomato", "state_dev.json"), p.StateFilePath())
}

func TestInDir(t *testing.T) {
	p := pathutil.InDir("/tmp/t")

	assert.Equal(t, "/tmp/t/tomato.db", p.DBFilePath())
	assert.Equal(t, "/tmp/t/log/tomato.log", p.LogFilePath())
	assert.Equal(t, "tomato", p.Dir())
}
