package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seapack/seapack/internal/platform"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seapack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseNoArgs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg, done, err := Parse(nil, &buf)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Nil(t, cfg)
	assert.Contains(t, buf.String(), "seapack")
	assert.Contains(t, buf.String(), "Usage:")
}

func TestParseHelp(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg, done, err := Parse([]string{"-h"}, &buf)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Nil(t, cfg)
}

func TestParseEntryAndPlatform(t *testing.T) {
	t.Parallel()

	cfg, done, err := Parse([]string{"-platform", "win32", "index.js"}, io.Discard)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "index.js", cfg.Entry)
	assert.Equal(t, platform.Win32, cfg.Platform)
	assert.Equal(t, "app", cfg.ExeName)
	assert.Equal(t, "node", cfg.NodeBin)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Obfuscate)
}

func TestParseMissingPlatform(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"index.js"}, io.Discard)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "target platform is required")
}

func TestParseUnsupportedPlatform(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"-platform", "freebsd", "index.js"}, io.Discard)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "unsupported platform")
}

func TestParseInvalidLogSettings(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"-platform", "linux", "-log-format", "xml", "index.js"}, io.Discard)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)

	_, _, err = Parse([]string{"-platform", "linux", "-log-level", "loud", "index.js"}, io.Discard)
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseUnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"-bogus"}, io.Discard)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseManifestFillsGaps(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
build {
  entry     = "src/main.js"
  platform  = "linux"
  obfuscate = true
  name      = "tool"
  node      = "/opt/node/bin/node"
}
`)

	cfg, done, err := Parse([]string{"-config", path}, io.Discard)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "src/main.js", cfg.Entry)
	assert.Equal(t, platform.Linux, cfg.Platform)
	assert.True(t, cfg.Obfuscate)
	assert.Equal(t, "tool", cfg.ExeName)
	assert.Equal(t, "/opt/node/bin/node", cfg.NodeBin)
}

func TestParseFlagsWinOverManifest(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
build {
  entry    = "src/main.js"
  platform = "linux"
  name     = "manifest-name"
}
`)

	cfg, _, err := Parse([]string{"-config", path, "-platform", "win32", "-name", "flag-name", "cli.js"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "cli.js", cfg.Entry)
	assert.Equal(t, platform.Win32, cfg.Platform)
	assert.Equal(t, "flag-name", cfg.ExeName)
}

func TestParseDefaultManifestPickup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultManifest), []byte(`
build {
  entry    = "app.js"
  platform = "darwin"
}
`), 0o644))
	t.Chdir(dir)

	cfg, done, err := Parse(nil, io.Discard)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "app.js", cfg.Entry)
	assert.Equal(t, platform.Darwin, cfg.Platform)
}

func TestParseManifestErrorIsFatal(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `build { entry = `)

	_, _, err := Parse([]string{"-config", path}, io.Discard)
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr), "manifest errors exit 1, not 2")
}

func TestParseNodeEnvFallback(t *testing.T) {
	t.Setenv(NodeEnv, "/custom/node")

	cfg, _, err := Parse([]string{"-platform", "linux", "index.js"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "/custom/node", cfg.NodeBin)

	cfg, _, err = Parse([]string{"-platform", "linux", "-node", "mynode", "index.js"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "mynode", cfg.NodeBin)
}
