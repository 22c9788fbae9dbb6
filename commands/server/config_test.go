package server

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/tescrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "tescrow-home-")
	require.NoError(t, err)
	return home, func() { os.RemoveAll(home) }
}

func TestLoadConfig(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	cfg, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	content := `
bind = "tcp://0.0.0.0:36658"
debug = true
log_level = "error"
`
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, ConfigFile), []byte(content), 0644))
	cfg, err = LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, "tcp://0.0.0.0:36658", cfg.Bind)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "error", cfg.LogLevel)
	// untouched values keep their defaults
	assert.Equal(t, "goleveldb", cfg.DBBackend)
	assert.Equal(t, DefaultConfig().MetricsAddr, cfg.MetricsAddr)

	require.NoError(t, ioutil.WriteFile(filepath.Join(home, ConfigFile), []byte(`unknown = 1`), 0644))
	_, err = LoadConfig(home)
	assert.True(t, errors.ErrInput.Is(err))

	require.NoError(t, ioutil.WriteFile(filepath.Join(home, ConfigFile), []byte(`bind = `), 0644))
	_, err = LoadConfig(home)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestWriteConfigRoundTrip(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	want := DefaultConfig()
	want.Debug = true
	want.MetricsAddr = ""
	require.NoError(t, WriteConfig(filepath.Join(home, "node"), want))

	got, err := LoadConfig(filepath.Join(home, "node"))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags(DefaultConfig(), []string{"-bind", "tcp://127.0.0.1:1234", "-debug", "-metrics", ""})
	require.NoError(t, err)
	assert.Equal(t, "tcp://127.0.0.1:1234", cfg.Bind)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "", cfg.MetricsAddr)
	assert.Equal(t, "info", cfg.LogLevel)

	_, err = parseFlags(DefaultConfig(), []string{"-no-such-flag"})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestConfigLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := DefaultConfig()
	cfg.LogLevel = "error"
	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)
	logger.Info("hidden")
	assert.Equal(t, 0, buf.Len())
	logger.Error("shown")
	assert.Contains(t, buf.String(), "shown")

	cfg.LogLevel = "loud"
	_, err = cfg.Logger(&buf)
	assert.True(t, errors.ErrInput.Is(err))
}
