// Package config handles configuration for flapmsg.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultSentinel is shown in place of the message when a request fails
	DefaultSentinel = "???"

	// DefaultServiceAddress points at a split-flap service on the local machine
	DefaultServiceAddress = "http://localhost:5000"

	configDirName = ".flapmsg"
)

// Config represents the user configuration
type Config struct {
	// ServiceAddress is the scheme://host[:port] of the message-storage service.
	// The API base is derived from it by appending "/api".
	ServiceAddress string `json:"service_address"`
	// Sentinel replaces the displayed message after any failed request.
	Sentinel string `json:"sentinel"`
	// DiscardStale drops responses that arrive after a newer one was already
	// applied. Off by default: the last response to arrive wins.
	DiscardStale bool `json:"discard_stale"`
	// TimeoutSeconds bounds each request. 0 means no timeout.
	TimeoutSeconds  int    `json:"timeout_seconds"`
	Verbose         bool   `json:"verbose"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	History         bool   `json:"history"`
	TUITheme        string `json:"tui_theme,omitempty"`
	LogFile         string `json:"log_file,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		ServiceAddress:  DefaultServiceAddress,
		Sentinel:        DefaultSentinel,
		DiscardStale:    false,
		TimeoutSeconds:  0,
		Verbose:         false,
		CopyToClipboard: false,
		History:         true,
		TUITheme:        "tokyonight",
		LogFile:         filepath.Join(homeDir, configDirName, "flapmsg.log"),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, configDirName), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetHistoryPath returns the path to the history database
func GetHistoryPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "history.db"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	// An explicitly blank sentinel would make failures invisible
	if cfg.Sentinel == "" {
		cfg.Sentinel = DefaultSentinel
	}
	if cfg.TimeoutSeconds < 0 {
		cfg.TimeoutSeconds = 0
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
