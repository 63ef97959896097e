package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".traktkit"))
		}

		// Check /etc
		v.AddConfigPath("/etc/traktkit/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Credentials file defaults to the user's config directory
	if home, err := os.UserHomeDir(); err == nil {
		v.SetDefault("auth.credentials_file", filepath.Join(home, ".traktkit", "credentials.json"))
	} else {
		v.SetDefault("auth.credentials_file", "credentials.json")
	}

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Trakt.ClientID == "" || cfg.Trakt.ClientID == "your-client-id-here" {
		return fmt.Errorf("trakt.client_id must be set to your registered application's client ID")
	}

	if cfg.Trakt.ClientSecret == "" || cfg.Trakt.ClientSecret == "your-client-secret-here" {
		return fmt.Errorf("trakt.client_secret must be set to your registered application's client secret")
	}

	if cfg.Trakt.RedirectURI == "" {
		return fmt.Errorf("trakt.redirect_uri is required")
	}

	if cfg.Auth.CredentialsFile == "" {
		return fmt.Errorf("auth.credentials_file is required")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
