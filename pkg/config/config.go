package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigFile is read when present; defaults and env vars apply otherwise.
const DefaultConfigFile = "./config/settings.yaml"

// EnvPrefix prefixes every environment override, e.g. REWISE_SERVER_PORT.
const EnvPrefix = "REWISE"

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load(DefaultConfigFile)
	})
	return initErr
}

// load sets defaults, env overrides and the optional config file, then
// validates the result.
func load(path string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath := filepath.Clean(path)
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	for _, key := range []string{"itunes.timeout", "feeds.timeout", "cache.feed_ttl"} {
		if viper.GetDuration(key) <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}

	// Auto-correct invalid limits
	autoCorrect := map[string]int{
		"itunes.requests_per_minute":        250,
		"feeds.max_episodes":                20,
		"rate_limiting.requests_per_minute": 30,
		"rate_limiting.burst":               30,
		"security.max_search_length":        100,
		"security.max_feed_url_length":      500,
	}
	for key, fallback := range autoCorrect {
		if viper.GetInt(key) <= 0 {
			viper.Set(key, fallback)
		}
	}
	if viper.GetInt("feeds.max_episodes") > 20 {
		viper.Set("feeds.max_episodes", 20)
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// iTunes defaults
	viper.SetDefault("itunes.base_url", "https://itunes.apple.com")
	viper.SetDefault("itunes.timeout", 10*time.Second)
	viper.SetDefault("itunes.user_agent", "ReWise-Backend/1.0.0")
	viper.SetDefault("itunes.requests_per_minute", 250)

	// Feed defaults
	viper.SetDefault("feeds.timeout", 10*time.Second)
	viper.SetDefault("feeds.max_episodes", 20)
	viper.SetDefault("feeds.user_agent", "ReWise-Backend/1.0.0")
	viper.SetDefault("feeds.coalesce_fetches", false)

	// Cache defaults
	viper.SetDefault("cache.feed_ttl", 10*time.Minute)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_minute", 30)
	viper.SetDefault("rate_limiting.burst", 30)

	// Security defaults
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.max_search_length", 100)
	viper.SetDefault("security.max_feed_url_length", 500)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "plain")
}
