// Package config handles the CLI connection configuration: a plain JSON
// file holding the API base URL and authentication token, and the rules for
// resolving it against explicitly passed parameters.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// File permissions for the config file; it holds a credential.
const configFileMode = 0o600

// Config holds the connection settings for a NocoDB instance.
type Config struct {
	// BaseURL is the base URL of the NocoDB API.
	BaseURL string `json:"base_url"`
	// AuthToken is the JWT authentication token.
	AuthToken string `json:"auth_token"`
}

// ConfigurationError reports conflicting or missing connection parameters.
type ConfigurationError struct {
	msg string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return e.msg
}

// Resolution failures. Exactly one source must provide the connection
// settings, and an explicit pair must be complete.
var (
	ErrConflictingSources = &ConfigurationError{msg: "use either a config file or the --url and --token parameters"}
	ErrIncompletePair     = &ConfigurationError{msg: "if defined by parameter, both --url and --token have to be set"}
	ErrMissingConnection  = &ConfigurationError{msg: "connection information missing, use a config file or the --url and --token parameters"}
)

// Load reads the config from a JSON file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config as JSON to a file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, configFileMode)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Resolve determines the connection settings from a config file path or an
// explicit URL/token pair. Providing both sources, only half of the pair,
// or neither fails with a ConfigurationError.
func Resolve(configPath, url, token string) (*Config, error) {
	gotConfig := configPath != ""
	gotURL := url != ""
	gotToken := token != ""

	if gotConfig && (gotURL || gotToken) {
		return nil, ErrConflictingSources
	}

	if gotURL != gotToken {
		return nil, ErrIncompletePair
	}

	if gotURL && gotToken {
		return &Config{BaseURL: url, AuthToken: token}, nil
	}

	if !gotConfig {
		return nil, ErrMissingConnection
	}

	return Load(configPath)
}
