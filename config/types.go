package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Organization string        `mapstructure:"organization"`
	Auth         AuthConfig    `mapstructure:"auth"`
	HTTP         HTTPConfig    `mapstructure:"http"`
	Filter       FilterConfig  `mapstructure:"filter"`
	Logging      LoggingConfig `mapstructure:"logging"`
}

// AuthConfig controls token acquisition and caching
type AuthConfig struct {
	CacheDir string `mapstructure:"cache_dir"`
}

// HTTPConfig holds request, retry and pagination settings
type HTTPConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	SearchTimeout time.Duration `mapstructure:"search_timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryWait     time.Duration `mapstructure:"retry_wait"`
	MaxRetryWait  time.Duration `mapstructure:"max_retry_wait"`
	PageLimit     int           `mapstructure:"page_limit"`
	APIVersion    string        `mapstructure:"api_version"`
	UserAgent     string        `mapstructure:"user_agent"`
}

// FilterConfig contains named client-side filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
