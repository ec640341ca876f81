package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForeverZer0/texpack"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	data := "pot = false\npadding_x = 0\nmax_width = 2048\nalpha_threshold = 8\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	settings, err := Load(path, nil)
	require.NoError(t, err)

	want := texpack.DefaultSettings()
	want.POT = false
	want.PaddingX = 0
	want.MaxWidth = 2048
	want.AlphaThreshold = 8
	assert.Equal(t, want, settings)
}

func TestLoadUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("paddding_x = 4\n"), 0o644))

	var buf bytes.Buffer
	settings, err := Load(path, log.New(&buf))
	require.NoError(t, err)
	assert.Equal(t, texpack.DefaultSettings(), settings)
	assert.Contains(t, buf.String(), "unknown config keys")
	assert.Contains(t, buf.String(), "paddding_x")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("padding_x = \"wide\"\n"), 0o644))
	_, err = Load(path, nil)
	assert.ErrorContains(t, err, "read config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	settings := texpack.DefaultSettings()
	settings.Square = true
	settings.StripWhitespaceX = true
	settings.MinWidth = 32
	require.NoError(t, Save(path, settings))

	ok, err := Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "square = true")
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	ok, err := Exists(filepath.Join(dir, "nope.toml"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Exists(dir)
	require.NoError(t, err)
	assert.False(t, ok)
}
