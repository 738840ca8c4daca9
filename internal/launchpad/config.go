// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package launchpad

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in the launchpad file.
const (
	BackendPostgres = "postgres"
	BackendBolt     = "bolt"
	BackendMemory   = "memory"
)

// ConfigEnvVar points at the queue client configuration file.
const ConfigEnvVar = "FW_CONFIG_FILE"

// DefaultFileName is looked up next to the FW_CONFIG_FILE file, or in the
// working directory when FW_CONFIG_FILE is unset.
const DefaultFileName = "my_launchpad.yaml"

var (
	// ErrNotConfigured is returned when FW_CONFIG_FILE names a file that
	// cannot be read.
	ErrNotConfigured = errors.New("launchpad not configured")
	// ErrUnknownBackend is returned for a backend name this build does not
	// support.
	ErrUnknownBackend = errors.New("unknown launchpad backend")
	// ErrInvalidConfig is returned for a launchpad file that cannot be
	// decoded or is missing required settings.
	ErrInvalidConfig = errors.New("invalid launchpad config")
)

// Config is the content of a launchpad file.
type Config struct {
	Backend  string `yaml:"backend"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	// URI, when set, is used as the PostgreSQL connection string as is.
	URI string `yaml:"uri"`
	// Path is the bbolt database file.
	Path string `yaml:"path"`

	// source is the file the config was read from.
	source string
}

// Source returns the file the config was loaded from, if any.
func (c Config) Source() string { return c.source }

// fwConfig is the part of FW_CONFIG_FILE the launchpad needs.
type fwConfig struct {
	LaunchpadLoc string `yaml:"LAUNCHPAD_LOC"`
}

// LoadConfig reads and validates a launchpad file. Relative bbolt paths
// are resolved against the file's directory.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	cfg.source = path
	if cfg.Path != "" && !filepath.IsAbs(cfg.Path) {
		cfg.Path = filepath.Join(filepath.Dir(path), cfg.Path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve locates and loads the launchpad file: path when given, else the
// file FW_CONFIG_FILE names in LAUNCHPAD_LOC, else my_launchpad.yaml beside
// FW_CONFIG_FILE or in the working directory. When none exists the default
// configuration is returned, a PostgreSQL database named fireworks on
// localhost. Nothing is contacted here.
func Resolve(path string) (Config, error) {
	if path != "" {
		return LoadConfig(path)
	}

	dir := "."
	if fwPath := os.Getenv(ConfigEnvVar); fwPath != "" {
		data, err := os.ReadFile(fwPath)
		if err != nil {
			return Config{}, fmt.Errorf("%w: reading %s: %w", ErrNotConfigured, ConfigEnvVar, err)
		}
		var fc fwConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, fwPath, err)
		}
		if fc.LaunchpadLoc != "" {
			return LoadConfig(fc.LaunchpadLoc)
		}
		dir = filepath.Dir(fwPath)
	}

	candidate := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(candidate); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
		var cfg Config
		if err := cfg.Validate(); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	return LoadConfig(candidate)
}

// Validate fills defaults and checks the backend specific settings.
func (c *Config) Validate() error {
	if c.Backend == "" {
		c.Backend = BackendPostgres
	}
	switch c.Backend {
	case BackendPostgres:
		if c.URI == "" && c.Host == "" {
			c.Host = "localhost"
		}
		if c.Port == 0 {
			c.Port = 5432
		}
		if c.Name == "" {
			c.Name = "fireworks"
		}
	case BackendBolt:
		if c.Path == "" {
			return fmt.Errorf("%w: the bolt backend needs a path", ErrInvalidConfig)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	return nil
}

// ConnString returns the PostgreSQL connection string.
func (c Config) ConnString() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + strconv.Itoa(c.Port),
		Path:   "/" + c.Name,
	}
	if c.Username != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.Username, c.Password)
		} else {
			u.User = url.User(c.Username)
		}
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}
