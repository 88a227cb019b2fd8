// Package config loads and validates application configuration from a YAML
// file and WIKIQUERY_-prefixed environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jonesrussell/wikiquery/internal/logger"
	"github.com/jonesrussell/wikiquery/internal/wiki"
)

// Default configuration values.
const (
	// DefaultCacheFile is the default backing file for the record cache.
	DefaultCacheFile = "./data/wikiquery_cache.json"
	// EnvPrefix is the environment variable prefix.
	EnvPrefix = "WIKIQUERY"
)

// Config holds the application configuration.
type Config struct {
	// CacheFile is the path of the serialized record cache. One file per
	// research module; deleting it is the only way to clear the cache.
	CacheFile string `yaml:"cache_file" mapstructure:"cache_file"`
	// Wiki configures the page fetcher client.
	Wiki wiki.Config `yaml:"wiki" mapstructure:"wiki"`
	// Logging configures the structured logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// WithDefaults returns a copy of the config with defaults applied for
// zero-value fields.
func (c Config) WithDefaults() Config {
	if c.CacheFile == "" {
		c.CacheFile = DefaultCacheFile
	}
	c.Wiki = c.Wiki.WithDefaults()
	if c.Logging.Level == "" {
		c.Logging.Level = logger.DefaultLevel
	}
	if c.Logging.Encoding == "" {
		c.Logging.Encoding = logger.DefaultEncoding
	}
	return c
}

// Validate checks the configuration for values the application cannot run
// with.
func (c *Config) Validate() error {
	if c.CacheFile == "" {
		return fmt.Errorf("cache_file must not be empty")
	}
	if c.Wiki.APIBaseURL == "" {
		return fmt.Errorf("wiki.api_base_url must not be empty")
	}
	if c.Wiki.Timeout <= 0 {
		return fmt.Errorf("wiki.timeout must be positive, got %s", c.Wiki.Timeout)
	}
	if c.Wiki.SearchLimit <= 0 {
		return fmt.Errorf("wiki.search_limit must be positive, got %d", c.Wiki.SearchLimit)
	}
	switch c.Logging.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("logging.encoding must be console or json, got %q", c.Logging.Encoding)
	}
	return nil
}

// setDefaults registers every configuration key with viper. Registration is
// what makes AutomaticEnv feed Unmarshal: viper only consults the environment
// for keys it knows about.
func setDefaults(v *viper.Viper) {
	v.SetDefault("cache_file", DefaultCacheFile)
	v.SetDefault("wiki.api_base_url", wiki.DefaultAPIBaseURL)
	v.SetDefault("wiki.page_base_url", wiki.DefaultPageBaseURL)
	v.SetDefault("wiki.user_agent", wiki.DefaultUserAgent)
	v.SetDefault("wiki.timeout", wiki.DefaultTimeout)
	v.SetDefault("wiki.search_limit", wiki.DefaultSearchLimit)
	v.SetDefault("logging.level", logger.DefaultLevel)
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.encoding", logger.DefaultEncoding)
}

// Load reads configuration from the given file (optional), the working
// directory, and the environment, then applies defaults and validates.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover everything.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
