package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server       ServerConfig    `mapstructure:"server"`
	ITunes       ITunesConfig    `mapstructure:"itunes"`
	Feeds        FeedsConfig     `mapstructure:"feeds"`
	Cache        CacheConfig     `mapstructure:"cache"`
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
	Security     SecurityConfig  `mapstructure:"security"`
	Logging      LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// ITunesConfig contains iTunes Search API settings
type ITunesConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// FeedsConfig contains RSS feed fetching settings
type FeedsConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxEpisodes     int           `mapstructure:"max_episodes"`
	UserAgent       string        `mapstructure:"user_agent"`
	CoalesceFetches bool          `mapstructure:"coalesce_fetches"`
}

// CacheConfig contains feed cache settings
type CacheConfig struct {
	FeedTTL time.Duration `mapstructure:"feed_ttl"`
}

// RateLimitConfig contains per-client rate limiting settings
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}

// SecurityConfig contains CORS and input limit settings
type SecurityConfig struct {
	CORSOrigins      []string `mapstructure:"cors_origins"`
	MaxSearchLength  int      `mapstructure:"max_search_length"`
	MaxFeedURLLength int      `mapstructure:"max_feed_url_length"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
