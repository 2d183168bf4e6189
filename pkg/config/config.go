// Package config provides configuration management for senget. It handles
// loading, validating and saving the YAML settings file and provides defaults
// for every setting, so a missing file is a valid configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/fsutil"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings. Empty folder settings
// are derived from RootDir.
type Settings struct {
	// Storage settings
	RootDir      string `yaml:"root_dir,omitempty"`
	PackagesDir  string `yaml:"packages_dir,omitempty"`
	DistsDir     string `yaml:"dists_dir,omitempty"` // downloaded distributables
	DatabasePath string `yaml:"database_path,omitempty"`
	HooksDir     string `yaml:"hooks_dir,omitempty"`

	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout"` // 0 means no timeout
	UserAgent   string        `yaml:"user_agent"`
	GitHubToken string        `yaml:"github_token,omitempty"` // falls back to $GITHUB_TOKEN

	// Installation settings
	KeepDownloads   bool  `yaml:"keep_downloads"`
	CreateShortcuts bool  `yaml:"create_shortcuts"`
	CacheWarnMB     int64 `yaml:"cache_warn_mb"` // 0 disables the warning

	// Output settings
	LogLevel        string `yaml:"log_level"` // debug, info, warn, error
	CheckSelfUpdate bool   `yaml:"check_self_update"`
}

// Default configuration values.
const (
	// AppName names the configuration and data folders.
	AppName = "Senget"

	// DefaultUserAgent is sent with every GitHub request.
	DefaultUserAgent = "Senget"

	// DefaultCacheWarnMB is the distributables cache size that triggers a hint.
	DefaultCacheWarnMB = 100

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			RootDir:         defaultRootDir(),
			UserAgent:       DefaultUserAgent,
			LogLevel:        "info",
			CacheWarnMB:     DefaultCacheWarnMB,
			CheckSelfUpdate: true,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader. Settings the
// document leaves out keep their defaults.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves configuration to a file through a temporary file that is
// renamed over the target.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	s := c.Settings
	if s.HTTPTimeout < 0 {
		return fmt.Errorf("%w: http_timeout cannot be negative", errors.ErrConfigValidation)
	}
	if s.CacheWarnMB < 0 {
		return fmt.Errorf("%w: cache_warn_mb cannot be negative", errors.ErrConfigValidation)
	}
	if !validLogLevels[strings.ToLower(s.LogLevel)] {
		return fmt.Errorf("%w: invalid log level %q, expected one of debug, info, warn, error", errors.ErrConfigValidation, s.LogLevel)
	}
	for key, dir := range map[string]string{
		"root_dir":      s.RootDir,
		"packages_dir":  s.PackagesDir,
		"dists_dir":     s.DistsDir,
		"database_path": s.DatabasePath,
		"hooks_dir":     s.HooksDir,
	} {
		if dir != "" && !filepath.IsAbs(dir) {
			return fmt.Errorf("%w: %s must be an absolute path: %s", errors.ErrConfigValidation, key, dir)
		}
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, strings.ToLower(AppName), "config.yaml"), nil
}

// GetPackagesDir returns the folder standalone and zip packages are installed
// into.
func (c *Config) GetPackagesDir() string {
	return c.orRoot(c.Settings.PackagesDir, "Packages")
}

// GetDistsDir returns the folder distributables are downloaded into.
func (c *Config) GetDistsDir() string {
	return c.orRoot(c.Settings.DistsDir, "Package-Installers")
}

// GetDatabasePath returns the path to the installed packages database.
func (c *Config) GetDatabasePath() string {
	return c.orRoot(c.Settings.DatabasePath, "packages.db")
}

// GetHooksDir returns the folder holding per package hook scripts.
func (c *Config) GetHooksDir() string {
	return c.orRoot(c.Settings.HooksDir, "hooks")
}

func (c *Config) orRoot(value, name string) string {
	if value != "" {
		return value
	}
	return filepath.Join(c.Settings.RootDir, name)
}

// Effective returns a copy of c with every derived folder filled in.
func (c *Config) Effective() *Config {
	effective := *c
	effective.Settings.PackagesDir = c.GetPackagesDir()
	effective.Settings.DistsDir = c.GetDistsDir()
	effective.Settings.DatabasePath = c.GetDatabasePath()
	effective.Settings.HooksDir = c.GetHooksDir()
	return &effective
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Settings.RootDir == "" {
		c.Settings.RootDir = defaultRootDir()
	}
	if c.Settings.UserAgent == "" {
		c.Settings.UserAgent = DefaultUserAgent
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
}

func defaultRootDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to temp directory if we can't determine the config dir
		configDir = os.TempDir()
	}
	return filepath.Join(configDir, AppName)
}
