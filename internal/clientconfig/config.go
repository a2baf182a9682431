// Package clientconfig stores boardctl settings in a YAML file.
package clientconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

const (
	FileName      = "config.yaml"
	DefaultServer = "http://localhost:8080"

	dirMode  = 0o700
	fileMode = 0o600
)

// Config is what boardctl remembers between runs.
type Config struct {
	Server   string `yaml:"server"`
	Token    string `yaml:"token,omitempty"`
	PersonID string `yaml:"person_id,omitempty"`

	path string
}

// DefaultPath returns ~/.config/taskboard/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "taskboard", FileName), nil
}

// Load reads the config at path. A missing file is not an error and yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{Server: DefaultServer, path: path}

	data, err := os.ReadFile(path) //nolint:gosec // user config path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Server = strings.TrimRight(strings.TrimSpace(cfg.Server), "/")
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	return cfg, nil
}

func (c *Config) Path() string { return c.path }

// Save writes the config back, creating the directory if needed. The file
// holds a bearer token, so it is only readable by the owner.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.path, data, fileMode)
}

// ClearSession forgets the stored token and person.
func (c *Config) ClearSession() {
	c.Token = ""
	c.PersonID = ""
}
