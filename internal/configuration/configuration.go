package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"courier/internal/file"
)

var defaultConfig = Config{
	AccountsURL:         "http://localhost:8700/accounts",
	ChatsURL:            "http://localhost:8700/chats",
	RequestTimeout:      0,
	PollIntervalSeconds: 3,
	Database:            "~/.config/courier/courier.db",
	DebugLog:            "",
}

// Config holds configuration for the courier client.
type Config struct {
	// The accounts endpoint: identity listing, login, registration, profile edits.
	AccountsURL string `json:"accounts_url"`
	// The conversations endpoint: chats, messages, membership.
	ChatsURL string `json:"chats_url"`
	// Per-request timeout in seconds. 0 disables the timeout.
	RequestTimeout int `json:"request_timeout"`
	// Period of the background refresh timer.
	PollIntervalSeconds int `json:"poll_interval_seconds"`
	// Path of the local session database.
	Database string `json:"database"`
	// Debug log path. Empty uses the default temp file.
	DebugLog string `json:"debug_log"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedDatabasePath, err := file.ExpandPath(config.Database)
	if err != nil {
		return nil, errors.Wrap(err, "expanding database path")
	}
	config.Database = expandedDatabasePath
	if dir, _ := filepath.Split(config.Database); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "creating database folder")
		}
	}
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
