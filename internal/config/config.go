package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	IndexPath   string     `toml:"index_path"`
	DocsDir     string     `toml:"docs_dir"`
	HistoryPath string     `toml:"history_path"`
	HistorySize int        `toml:"history_size"`
	PageSize    int        `toml:"page_size"`
	Debounce    Duration   `toml:"debounce"`
	Timeout     Duration   `toml:"search_timeout"`
	UISettings  UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowTotals bool `toml:"show_totals"`
	WatchIndex bool `toml:"watch_index"`
}

// Duration wraps time.Duration for TOML round-tripping
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dir := appConfigDir()
	return &Config{
		IndexPath:   filepath.Join(dir, "index.db"),
		HistoryPath: filepath.Join(dir, "recent.toml"),
		HistorySize: 5,
		PageSize:    10,
		Debounce:    Duration{150 * time.Millisecond},
		Timeout:     Duration{3 * time.Second},
		UISettings: UISettings{
			ShowTotals: true,
			WatchIndex: true,
		},
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(appConfigDir(), "config.toml")
}

// Load reads the configuration from path. A missing file yields the default
// configuration rather than an error.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.HistorySize < 1 {
		cfg.HistorySize = 5
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 10
	}
	if cfg.Debounce.Duration <= 0 {
		cfg.Debounce = Duration{150 * time.Millisecond}
	}
	if cfg.Timeout.Duration <= 0 {
		cfg.Timeout = Duration{3 * time.Second}
	}

	return cfg, nil
}

// Save writes the configuration to path, creating directories as needed
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// appConfigDir returns the docseek config directory, falling back to
// ~/.config and finally the current directory
func appConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "docseek")
}
