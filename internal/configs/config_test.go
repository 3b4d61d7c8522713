package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "BACKEND_URL", "BACKEND_TIMEOUT", "STDOUT_LOG_LEVEL", "LOG_FORMAT",
		"LOG_FILE", "FLUENTBIT_ENABLED", "FLUENTBIT_HOST", "FLUENTBIT_PORT", "FLUENTBIT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultAppName, cfg.AppName)
	assert.Equal(t, DefaultBackendURL, cfg.Backend.URL)
	assert.Equal(t, DefaultBackendTimeout, cfg.Backend.Timeout)
	assert.Equal(t, "info", cfg.StdoutLogger.Level)
	assert.Equal(t, "text", cfg.StdoutLogger.Format)
	assert.Equal(t, DefaultLogFile, cfg.StdoutLogger.File)
	assert.False(t, cfg.FluentBit.Enabled)
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, `
APP_NAME=viewer-test
BACKEND_URL=https://api.example.com/v2
BACKEND_TIMEOUT=3s
STDOUT_LOG_LEVEL=debug
FLUENTBIT_ENABLED=true
FLUENTBIT_HOST=fluent
FLUENTBIT_PORT=25000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "viewer-test", cfg.AppName)
	assert.Equal(t, "https://api.example.com/v2", cfg.Backend.URL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "debug", cfg.StdoutLogger.Level)
	assert.True(t, cfg.FluentBit.Enabled)
	assert.Equal(t, "fluent", cfg.FluentBit.Host)
	assert.Equal(t, 25000, cfg.FluentBit.Port)
	assert.Equal(t, "info", cfg.FluentBit.Level)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestLoadConfig_FluentWithoutHostIsDisabled(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "FLUENTBIT_ENABLED=true\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.FluentBit.Enabled)
}

func TestLoadConfig_BadValuesFallBack(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "BACKEND_TIMEOUT=soon\nFLUENTBIT_ENABLED=maybe\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBackendTimeout, cfg.Backend.Timeout)
	assert.False(t, cfg.FluentBit.Enabled)
}

func TestLoadConfig_InvalidBackendURL(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "BACKEND_URL=localhost:3001\n")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "BACKEND_URL")
}

func TestValidateBackendURL(t *testing.T) {
	assert.NoError(t, ValidateBackendURL("http://localhost:3001/api/v1"))
	assert.NoError(t, ValidateBackendURL("https://example.com"))
	assert.Error(t, ValidateBackendURL("ftp://example.com"))
	assert.Error(t, ValidateBackendURL("/api/v1"))
}
