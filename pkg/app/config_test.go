package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_NAME", "favorites-action")

	config, err := loadConfig(newViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	expected := defaultConfig
	expected.AppName = "favorites-action"
	assert.Equal(t, expected, config)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "favorites-action")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LISTEN_ADDRESS", ":9000")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "5s")
	t.Setenv("READ_HEADER_TIMEOUT", "2s")
	t.Setenv("ENABLE_PPROF", "false")
	t.Setenv("ENABLE_BALLAST", "false")
	t.Setenv("BALLAST_CAPACITY", "0.25")

	config, err := loadConfig(newViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, ":9000", config.ListenAddress)
	assert.Equal(t, 5*time.Second, config.ShutdownGracePeriod)
	assert.Equal(t, 2*time.Second, config.ReadHeaderTimeout)
	assert.False(t, config.EnablePprof)
	assert.True(t, config.EnableExpvar)
	assert.False(t, config.EnableBallast)
	assert.EqualValues(t, 0.25, config.BallastCapacity)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_name: favorites-action
listen_address: ":9443"
enable_memory_leak_cron: true
memory_leak_cron_schedule: "0 3 * * *"
app:
  cluster: mainnet-beta
`), 0o600))

	// Environment wins over the file
	t.Setenv("LISTEN_ADDRESS", ":9444")

	config, err := loadConfig(newViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "favorites-action", config.AppName)
	assert.Equal(t, ":9444", config.ListenAddress)
	assert.True(t, config.EnableMemoryLeakCron)
	assert.Equal(t, "0 3 * * *", config.MemoryLeakCronSchedule)
	assert.Equal(t, "mainnet-beta", config.AppConfig["cluster"])
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := loadConfig(newViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("APP_NAME", "favorites-action")
	t.Setenv("TLS_CERTIFICATE", "/etc/tls/cert.pem")

	_, err = loadConfig(newViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_name: [unterminated"), 0o600))

	_, err = loadConfig(newViper(), path)
	assert.Error(t, err)
}
