package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds CLI configuration stored at ~/.chanhub/config.
type Config struct {
	APIKey   string `yaml:"api_key"`
	UserID   int    `yaml:"user_id"`
	Username string `yaml:"username"`
	APIURL   string `yaml:"api_url,omitempty"`
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".chanhub", "config")
}

// Load reads and parses the config file. Returns error if missing or insecure.
//
// Environment variables override the file: CHANHUB_API_KEY, CHANHUB_API_URL
// and CHANHUB_USER_ID, sourced from the process environment or a .env file
// in the working directory.
func Load() (*Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		if cfg, ok := fromEnvOnly(); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&cfg)

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("config missing api_key")
	}

	return &cfg, nil
}

// fromEnvOnly builds a config purely from environment variables, used when
// no config file exists yet.
func fromEnvOnly() (*Config, bool) {
	var cfg Config
	applyEnv(&cfg)
	if cfg.APIKey == "" {
		return nil, false
	}
	return &cfg, true
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CHANHUB_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("CHANHUB_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("CHANHUB_USER_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.UserID = id
		}
	}
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
