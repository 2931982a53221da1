// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Habr     HabrConfig     `yaml:"habr"`
	Database DatabaseConfig `yaml:"database"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// HabrConfig configures the Habr source.
type HabrConfig struct {
	Hubs    []string      `yaml:"hubs"`
	Filters FiltersConfig `yaml:"filters"`

	// ScrapeDelay bounds the randomized pause between article page scrapes.
	ScrapeDelay time.Duration `yaml:"scrape_delay,omitempty"`
}

// FiltersConfig drops unwanted articles at fetch time.
type FiltersConfig struct {
	ExcludeKeywords []string `yaml:"exclude_keywords,omitempty"`
	MinRating       int      `yaml:"min_rating"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	// Path to the SQLite file. Empty means <config dir>/inforadar.db.
	Path string `yaml:"path,omitempty"`
}

// UIConfig holds UI defaults.
type UIConfig struct {
	// ShowDetails toggles the metadata columns of the article table.
	ShowDetails bool `yaml:"show_details"`

	// DefaultSort picks the initial table order: date, rating, views,
	// comments or bookmarks (descending). Unknown values mean date.
	DefaultSort string `yaml:"default_sort,omitempty"`

	// Notify fires a desktop notification when a fetch finds new articles.
	Notify bool `yaml:"notify"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// File receives structured logs; empty means <config dir>/inforadar.log.
	File string `yaml:"file,omitempty"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Habr: HabrConfig{
			Hubs:        []string{"go"},
			ScrapeDelay: time.Second,
		},
		UI: UIConfig{
			ShowDetails: true,
			Notify:      true,
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "inforadar")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the config file.
// If the file doesn't exist, returns a default configuration.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DatabasePath resolves the SQLite file location.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "inforadar.db"), nil
}

// LogFilePath resolves the log file location.
func (c *Config) LogFilePath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "inforadar.log"), nil
}
