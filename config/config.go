// Package config provides configuration loading for the skill survey service.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Catalog CatalogConfig `yaml:"catalog"`
	Resume  ResumeConfig  `yaml:"resume"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `yaml:"addr"`
}

// StoreConfig configures the persisted survey document.
type StoreConfig struct {
	// DataFile is the path of the JSON document holding surveys,
	// responses and assignments.
	DataFile string `yaml:"data_file"`
}

// CatalogConfig configures the read-only process and user catalogs.
type CatalogConfig struct {
	// ProcessFile is the CSV file of business processes.
	ProcessFile string `yaml:"process_file"`
	// UserFile is the CSV file of known users.
	UserFile string `yaml:"user_file"`
	// Watch enables reloading catalogs when the backing files change.
	Watch bool `yaml:"watch"`
}

// ResumeConfig configures the resume corpus.
type ResumeConfig struct {
	// Dir is the directory of plain-text resume files.
	Dir string `yaml:"dir"`
	// Watch enables reloading the corpus when files change.
	Watch bool `yaml:"watch"`
}

// AuthConfig configures request authentication.
type AuthConfig struct {
	// JWTSecret signs and validates bearer tokens. Read from the
	// JWT_SECRET environment variable when empty.
	JWTSecret string `yaml:"jwt_secret"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug/info/warn/error.
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Store:   StoreConfig{DataFile: "data.json"},
		Catalog: CatalogConfig{ProcessFile: "processes.csv", UserFile: "users.csv", Watch: true},
		Resume:  ResumeConfig{Dir: "resumes", Watch: true},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the config file at path on top of defaults. A missing file
// is not an error; the defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("DATA_FILE")); v != "" {
		c.Store.DataFile = v
	}
	if v := strings.TrimSpace(os.Getenv("PROCESS_FILE")); v != "" {
		c.Catalog.ProcessFile = v
	}
	if v := strings.TrimSpace(os.Getenv("USER_FILE")); v != "" {
		c.Catalog.UserFile = v
	}
	if v := strings.TrimSpace(os.Getenv("RESUME_DIR")); v != "" {
		c.Resume.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Store.DataFile == "" {
		return fmt.Errorf("store.data_file is required")
	}
	return nil
}
