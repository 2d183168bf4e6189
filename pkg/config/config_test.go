package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/fsutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, "Senget", cfg.Settings.UserAgent)
	assert.Equal(t, time.Duration(0), cfg.Settings.HTTPTimeout)
	assert.Equal(t, int64(100), cfg.Settings.CacheWarnMB)
	assert.True(t, cfg.Settings.CheckSelfUpdate)
	assert.False(t, cfg.Settings.KeepDownloads)
	assert.Equal(t, "Senget", filepath.Base(cfg.Settings.RootDir))
	require.NoError(t, cfg.Validate())
}

func TestDerivedPaths(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Senget")
	cfg := &Config{Settings: Settings{RootDir: root}}

	assert.Equal(t, filepath.Join(root, "Packages"), cfg.GetPackagesDir())
	assert.Equal(t, filepath.Join(root, "Package-Installers"), cfg.GetDistsDir())
	assert.Equal(t, filepath.Join(root, "packages.db"), cfg.GetDatabasePath())
	assert.Equal(t, filepath.Join(root, "hooks"), cfg.GetHooksDir())

	custom := filepath.Join(t.TempDir(), "dists")
	cfg.Settings.DistsDir = custom
	assert.Equal(t, custom, cfg.GetDistsDir())

	effective := cfg.Effective()
	assert.Equal(t, filepath.Join(root, "Packages"), effective.Settings.PackagesDir)
	assert.Empty(t, cfg.Settings.PackagesDir, "Effective must not modify the receiver")
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	root := filepath.Join(tempDir, "root")

	configContent := `settings:
  root_dir: ` + root + `
  log_level: debug
  http_timeout: 45s
  keep_downloads: true
  check_self_update: false`

	require.NoError(t, os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Settings.RootDir)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, 45*time.Second, cfg.Settings.HTTPTimeout)
	assert.True(t, cfg.Settings.KeepDownloads)
	assert.False(t, cfg.Settings.CheckSelfUpdate)
	assert.Equal(t, int64(100), cfg.Settings.CacheWarnMB, "omitted settings keep their defaults")
	assert.Equal(t, "Senget", cfg.Settings.UserAgent)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader_Errors(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("settings: ["))
	assert.ErrorIs(t, err, errors.ErrConfigParse)

	_, err = LoadConfigFromReader(strings.NewReader("settings:\n  log_level: loud\n"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Settings.HTTPTimeout = time.Minute

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.SaveConfig(configPath))
	assert.NoFileExists(t, configPath+".tmp")

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", modify: func(*Settings) {}},
		{name: "negative timeout", modify: func(s *Settings) { s.HTTPTimeout = -time.Second }, wantErr: true, errMsg: "http_timeout"},
		{name: "negative cache warning", modify: func(s *Settings) { s.CacheWarnMB = -1 }, wantErr: true, errMsg: "cache_warn_mb"},
		{name: "invalid log level", modify: func(s *Settings) { s.LogLevel = "loud" }, wantErr: true, errMsg: "invalid log level"},
		{name: "relative dists dir", modify: func(s *Settings) { s.DistsDir = "dists" }, wantErr: true, errMsg: "dists_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg.Settings)
			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, errors.ErrConfigValidation)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	path, err := GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "senget", filepath.Base(filepath.Dir(path)))
}
