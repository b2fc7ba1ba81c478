// SPDX-License-Identifier: MIT

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fwviz/config"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	c := config.Default()
	assert.Equal(t, config.Version, c.Version)
	assert.Equal(t, 50, c.Playback.Speed)
	assert.True(t, c.AutoplayEnabled())
	assert.Equal(t, 500.0, c.Canvas.Width)
	assert.Equal(t, 400.0, c.Canvas.Height)
	assert.Equal(t, 50.0, c.Canvas.Margin)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, []string{"*"}, c.Server.AllowedOrigins)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "fwviz.yaml", `
version: 1
playback:
  speed: 80
  autoplay: false
canvas:
  width: 800
graph:
  file: graphs/demo.json
  source: A
  target: D
server:
  addr: "127.0.0.1:9000"
log:
  level: debug
  format: json
`)

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80, c.Playback.Speed)
	assert.False(t, c.AutoplayEnabled())
	assert.Equal(t, 800.0, c.Canvas.Width)
	assert.Equal(t, 400.0, c.Canvas.Height, "defaulted")
	assert.Equal(t, filepath.Join(filepath.Dir(path), "graphs", "demo.json"), c.Graph.File)
	assert.Equal(t, "A", c.Graph.Source)
	assert.Equal(t, "127.0.0.1:9000", c.Server.Addr)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "fwviz.toml", `
version = 1

[playback]
speed = 250

[graph]
preset = "negative"
source = "A"
target = "C"

[log]
file = "/var/log/fwviz.log"
max_size_mb = 50
`)

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, c.Playback.Speed, "clamped")
	assert.True(t, c.AutoplayEnabled())
	assert.Equal(t, "negative", c.Graph.Preset)
	assert.Equal(t, "/var/log/fwviz.log", c.Log.File)
	assert.Equal(t, 50, c.Log.MaxSizeMB)
	assert.Equal(t, 7, c.Log.MaxAgeDays)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(write(t, "fwviz.ini", "version=1"))
	require.ErrorIs(t, err, config.ErrUnknownFormat)

	_, err = config.Load(write(t, "v2.yaml", "version: 2\n"))
	require.ErrorIs(t, err, config.ErrUnsupportedVersion)

	_, err = config.Load(write(t, "missing.toml", "[playback]\nspeed = 3\n"))
	require.ErrorIs(t, err, config.ErrUnsupportedVersion, "version is required")

	_, err = config.Load(write(t, "typo.yaml", "version: 1\nplayback:\n  sped: 3\n"))
	require.Error(t, err)

	_, err = config.Load(write(t, "typo.toml", "version = 1\n[playback]\nsped = 3\n"))
	require.Error(t, err)

	_, err = config.Load(write(t, "both.yaml", "version: 1\ngraph:\n  preset: simple\n  file: g.json\n"))
	require.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatOf(t *testing.T) {
	f, err := config.FormatOf("a/b.YML")
	require.NoError(t, err)
	assert.Equal(t, config.FormatYAML, f)

	f, err = config.FormatOf("c.toml")
	require.NoError(t, err)
	assert.Equal(t, config.FormatTOML, f)

	_, err = config.Parse([]byte("version: 1"), config.Format("xml"))
	require.ErrorIs(t, err, config.ErrUnknownFormat)
}

func TestNewLoggerFallback(t *testing.T) {
	var buf bytes.Buffer
	lc := config.LogConfig{Level: "warn", Format: "json"}

	log, closer, err := lc.NewLogger(&buf)
	require.NoError(t, err)
	defer closer.Close()

	log.Info("hidden")
	log.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":1`)
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fwviz.log")
	lc := config.Default().Log
	lc.File = path

	log, closer, err := lc.NewLogger(nil)
	require.NoError(t, err)
	log.Info("to file", "run", 7)
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=\"to file\"")
	assert.Contains(t, string(b), "run=7")
}

func TestNewLoggerBadSettings(t *testing.T) {
	_, _, err := config.LogConfig{Level: "loud"}.NewLogger(nil)
	require.Error(t, err)

	_, _, err = config.LogConfig{Level: "info", Format: "xml"}.NewLogger(nil)
	require.Error(t, err)
}
