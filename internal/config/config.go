package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
	GitHub   GitHubConfig   `yaml:"github"`
	History  HistoryConfig  `yaml:"history"`
}

// DefaultsConfig holds default acquisition parameters
type DefaultsConfig struct {
	WorkDir  string `yaml:"work_dir"`
	Strategy string `yaml:"strategy"`
	Depth    int    `yaml:"depth"`
}

// TimeoutsConfig holds external-operation timeouts as duration strings
type TimeoutsConfig struct {
	Clone string `yaml:"clone"`
	API   string `yaml:"api"`
}

// GitHubConfig holds hosting-provider settings
type GitHubConfig struct {
	Host     string `yaml:"host"`
	APIURL   string `yaml:"api_url"`
	TokenEnv string `yaml:"token_env"`
}

// HistoryConfig holds acquisition-history database settings
type HistoryConfig struct {
	DBPath   string `yaml:"db_path"`
	Disabled bool   `yaml:"disabled"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			WorkDir:  ".",
			Strategy: "full",
			Depth:    1,
		},
		Timeouts: TimeoutsConfig{
			Clone: "10m",
			API:   "30s",
		},
		GitHub: GitHubConfig{
			Host:     "github.com",
			APIURL:   "https://api.github.com",
			TokenEnv: "GITHUB_TOKEN",
		},
		History: HistoryConfig{
			DBPath: "",
		},
	}
}

// Load reads a config file from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() (string, error) {
	searchPaths := []string{
		"repograb.yaml",
		"/etc/repograb/repograb.yaml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths,
			filepath.Join(home, ".config", "repograb", "repograb.yaml"),
		)
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", searchPaths)
}

// CloneTimeout parses the clone timeout, falling back to 10 minutes.
func (c *Config) CloneTimeout() time.Duration {
	return parseTimeout(c.Timeouts.Clone, 10*time.Minute)
}

// APITimeout parses the API timeout, falling back to 30 seconds.
func (c *Config) APITimeout() time.Duration {
	return parseTimeout(c.Timeouts.API, 30*time.Second)
}

func parseTimeout(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Token returns the hosting API token from the configured environment
// variable, or empty if unset.
func (c *Config) Token() string {
	if c.GitHub.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.GitHub.TokenEnv)
}

// HistoryDBPath resolves the history database path. An explicit path wins;
// otherwise the database lives under the user's local data directory.
func (c *Config) HistoryDBPath() string {
	if c.History.DBPath != "" {
		return c.History.DBPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "repograb-history.db"
	}
	return filepath.Join(home, ".local", "share", "repograb", "history.db")
}
