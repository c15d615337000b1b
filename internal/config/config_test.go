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
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "http://localhost:8001", cfg.Conciliator.BaseURL)
	assert.Equal(t, "ws://localhost:8001/api/conciliator/ws", cfg.Conciliator.WSURL)
	assert.Equal(t, 3*time.Second, cfg.Conciliator.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Conciliator.PollMaxInterval)
	assert.Equal(t, 20, cfg.Conciliator.PollMaxAttempts)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Storage.Dir)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "santiice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://tickets.example.com
conciliator:
  poll_interval: 1s
  poll_max_attempts: 5
log:
  level: debug
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SANTIICE_STORAGE_DIR=/tmp/santi-env\n"), 0o600))
	t.Setenv("SANTIICE_LOG_LEVEL", "warn")
	t.Cleanup(func() { os.Unsetenv("SANTIICE_STORAGE_DIR") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://tickets.example.com", cfg.API.BaseURL)
	assert.Equal(t, time.Second, cfg.Conciliator.PollInterval)
	assert.Equal(t, 5, cfg.Conciliator.PollMaxAttempts)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/santi-env", cfg.Storage.Dir)
}

func TestLoad_ExplicitPath(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		API:         API{BaseURL: "http://a"},
		Conciliator: Conciliator{BaseURL: "http://b", PollInterval: time.Second, PollMaxInterval: time.Minute},
		Storage:     Storage{Dir: "/tmp"},
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no api url", mutate: func(c *Config) { c.API.BaseURL = "" }, wantErr: true},
		{name: "no conciliator url", mutate: func(c *Config) { c.Conciliator.BaseURL = "" }, wantErr: true},
		{name: "zero interval", mutate: func(c *Config) { c.Conciliator.PollInterval = 0 }, wantErr: true},
		{name: "cap below interval", mutate: func(c *Config) { c.Conciliator.PollMaxInterval = time.Millisecond }, wantErr: true},
		{name: "no storage", mutate: func(c *Config) { c.Storage.Dir = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
