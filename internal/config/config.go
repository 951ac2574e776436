package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run-history ledger configuration
type HistoryConfig struct {
	// Enabled enables recording of processing runs
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`

	// KeepRuns is the maximum number of runs to keep per folder (0 = unlimited)
	KeepRuns int `yaml:"keep_runs"`
}

// Config represents scormpack configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs will be written
	LogDir string `yaml:"log_dir"`

	// ZipDir is the name of the sibling directory archives are written to
	ZipDir string `yaml:"zip_dir"`

	// AutoConfirm answers yes to all confirmation prompts
	AutoConfirm bool `yaml:"auto_confirm"`

	// Preview opens the patched course in the local browser before the
	// score confirmation step
	Preview bool `yaml:"preview"`

	// History contains run-history ledger configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		LogDir:      filepath.Join(".scormpack", "logs"),
		ZipDir:      "ZippedFiles",
		AutoConfirm: false,
		Preview:     true,
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   filepath.Join(".scormpack", "history.db"),
			KeepRuns: 100,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults). Booleans
	// need presence detection, handled below via the raw map.
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}
	if fileCfg.ZipDir != "" {
		cfg.ZipDir = fileCfg.ZipDir
	}

	// Boolean and nested fields: only override defaults when the key is
	// actually present in the YAML.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["auto_confirm"]; exists {
			cfg.AutoConfirm = fileCfg.AutoConfirm
		}
		if _, exists := rawMap["preview"]; exists {
			cfg.Preview = fileCfg.Preview
		}

		if historySection, exists := rawMap["history"]; exists && historySection != nil {
			historyMap, _ := historySection.(map[string]interface{})

			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = fileCfg.History.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				// Explicitly set db_path, even if empty string
				cfg.History.DBPath = fileCfg.History.DBPath
			}
			if _, exists := historyMap["keep_runs"]; exists {
				cfg.History.KeepRuns = fileCfg.History.KeepRuns
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .scormpack/config.yaml in the
// specified directory. If the directory or file doesn't exist, returns
// default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".scormpack", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(logLevel *string, logDir *string, zipDir *string, autoConfirm *bool, preview *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if zipDir != nil {
		c.ZipDir = *zipDir
	}
	if autoConfirm != nil {
		c.AutoConfirm = *autoConfirm
	}
	if preview != nil {
		c.Preview = *preview
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.ZipDir == "" {
		return fmt.Errorf("zip_dir cannot be empty")
	}
	if filepath.IsAbs(c.ZipDir) || c.ZipDir != filepath.Base(c.ZipDir) {
		return fmt.Errorf("zip_dir must be a plain directory name, got %q", c.ZipDir)
	}

	if c.History.Enabled {
		if c.History.DBPath == "" {
			return fmt.Errorf("history.db_path cannot be empty when history is enabled")
		}
		if c.History.KeepRuns < 0 {
			return fmt.Errorf("history.keep_runs must be >= 0, got %d", c.History.KeepRuns)
		}
	}

	return nil
}
