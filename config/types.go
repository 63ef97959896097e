package config

// Config represents the complete configuration structure
type Config struct {
	Trakt   TraktConfig   `mapstructure:"trakt"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TraktConfig holds the registered Trakt application credentials
type TraktConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
}

// AuthConfig controls where tokens are persisted
type AuthConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
