package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME and the working directory at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range envKeys {
		t.Setenv("BANDHAN_"+strings.ToUpper(key), "")
		_ = os.Unsetenv("BANDHAN_" + strings.ToUpper(key))
	}

	origWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	require.Equal(t, "/custom/config/bandhan/bandhan.yml", GlobalPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	require.True(t, filepath.IsAbs(got), "GlobalPath() should be absolute, got %v", got)
	require.Equal(t, "bandhan.yml", filepath.Base(got))
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ".bandhan", cfg.DataDir)
	require.Equal(t, StorageFile, cfg.Storage)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, time.Second, cfg.AutosaveDelay)
	require.Equal(t, 600*time.Millisecond, cfg.OpponentDelay)
	require.Equal(t, 1500*time.Millisecond, cfg.ResetDelay)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	isolate(t)

	global := Defaults()
	global.DataDir = ".global"
	global.LogLevel = "warn"
	global.AutosaveDelay = 2 * time.Second
	require.NoError(t, WriteGlobal(global))

	project := Defaults()
	project.DataDir = ".project"
	project.Storage = StorageNATS
	project.LogLevel = "warn"
	project.AutosaveDelay = 2 * time.Second
	require.NoError(t, WriteProject(project))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ".project", cfg.DataDir)
	require.Equal(t, StorageNATS, cfg.Storage)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, 2*time.Second, cfg.AutosaveDelay)
	require.True(t, Exists())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteProject(Defaults()))
	t.Setenv("BANDHAN_DATA_DIR", "/tmp/from-env")
	t.Setenv("BANDHAN_TEMPLATE", "starry-night")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/from-env", cfg.DataDir)
	require.Equal(t, "starry-night", cfg.Template)
}

func TestWriteProject_YAMLFields(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteProject(Defaults()))
	data, err := os.ReadFile(ProjectPath())
	require.NoError(t, err)

	for _, field := range []string{"data_dir:", "storage:", "autosave_delay: 1s", "share_base_url:"} {
		require.Contains(t, string(data), field)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "nats storage", mutate: func(c *Config) { c.Storage = StorageNATS }},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage = "redis" }, wantErr: true},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.ResetDelay = -time.Second }, wantErr: true},
		{name: "known template", mutate: func(c *Config) { c.Template = "love-timeline" }},
		{name: "unknown template", mutate: func(c *Config) { c.Template = "disco" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
