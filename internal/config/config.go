// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bandhan/bandhan/internal/gift"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Storage backends for the draft key-value store.
const (
	StorageFile = "file"
	StorageNATS = "nats"
)

// Config holds all configuration values for bandhan.
type Config struct {
	DataDir       string        `mapstructure:"data_dir" yaml:"data_dir"`
	Storage       string        `mapstructure:"storage" yaml:"storage"`
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string        `mapstructure:"log_file" yaml:"log_file"`
	Template      string        `mapstructure:"template" yaml:"template"`
	AutosaveDelay time.Duration `mapstructure:"autosave_delay" yaml:"autosave_delay"`
	OpponentDelay time.Duration `mapstructure:"opponent_delay" yaml:"opponent_delay"`
	ResetDelay    time.Duration `mapstructure:"reset_delay" yaml:"reset_delay"`
	ShareBaseURL  string        `mapstructure:"share_base_url" yaml:"share_base_url"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		DataDir:       ".bandhan",
		Storage:       StorageFile,
		LogLevel:      "info",
		AutosaveDelay: time.Second,
		OpponentDelay: 600 * time.Millisecond,
		ResetDelay:    1500 * time.Millisecond,
		ShareBaseURL:  "https://bandhan.gift/g",
	}
}

var envKeys = []string{
	"data_dir",
	"storage",
	"log_level",
	"log_file",
	"template",
	"autosave_delay",
	"opponent_delay",
	"reset_delay",
	"share_base_url",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("bandhan")

	d := Defaults()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("storage", d.Storage)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("template", d.Template)
	v.SetDefault("autosave_delay", d.AutosaveDelay)
	v.SetDefault("opponent_delay", d.OpponentDelay)
	v.SetDefault("reset_delay", d.ResetDelay)
	v.SetDefault("share_base_url", d.ShareBaseURL)

	v.SetEnvPrefix("BANDHAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key, "BANDHAN_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile, StorageNATS:
	default:
		return fmt.Errorf("unknown storage backend %q (must be %s or %s)", c.Storage, StorageFile, StorageNATS)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.AutosaveDelay < 0 || c.OpponentDelay < 0 || c.ResetDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.Template != "" {
		if _, err := gift.ParseTemplate(c.Template); err != nil {
			return fmt.Errorf("template: %w", err)
		}
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/bandhan/bandhan.yml or $XDG_CONFIG_HOME/bandhan/bandhan.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bandhan", "bandhan.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bandhan", "bandhan.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "bandhan.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
