package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	clientConfigDir  = "taskboard"
	clientConfigFile = "config.yaml"
	defaultServerURL = "http://localhost:8080"
)

// ClientConfig is what the board client needs to reach the API.
type ClientConfig struct {
	ServerURL string `yaml:"server_url"`
	Token     string `yaml:"token"`
}

// DefaultClientConfigPath returns $XDG_CONFIG_HOME/taskboard/config.yaml or its platform equivalent.
func DefaultClientConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return clientConfigFile
	}
	return filepath.Join(dir, clientConfigDir, clientConfigFile)
}

// LoadClient reads path (a missing file is fine) and then applies
// TASKBOARD_SERVER_URL and TASKBOARD_TOKEN on top.
func LoadClient(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{ServerURL: defaultServerURL}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read client config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse client config %s: %w", path, err)
			}
		}
	}

	cfg.ServerURL = getEnv("TASKBOARD_SERVER_URL", cfg.ServerURL)
	cfg.Token = getEnv("TASKBOARD_TOKEN", cfg.Token)
	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")

	if cfg.ServerURL == "" {
		return nil, errors.New("server_url is empty")
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("no token configured: set token in the config file or TASKBOARD_TOKEN")
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func (c *ClientConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode client config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
