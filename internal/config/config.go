package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RFCPICKER_MAVEN_TIMEOUT.
const EnvPrefix = "RFCPICKER"

// Config wraps a viper instance with typed accessors.
type Config struct {
	v *viper.Viper
}

// New loads configuration from file when set, otherwise from config.yaml in
// the usual search paths. A missing config file is not an error.
func New(file string) (*Config, error) {
	v := NewEmptyViper()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$XDG_CONFIG_HOME/rfcpicker")
		v.AddConfigPath("$HOME/.config/rfcpicker")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Config{v: v}, nil
}

// NewFromViper wraps an existing viper instance.
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper returns a viper instance with defaults and environment
// overrides but no config file.
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	// Maven coordinates shown in the dependency snippet
	v.SetDefault("maven.group_id", "org.simplejavamail")
	v.SetDefault("maven.artifact_id", "simple-java-mail")
	v.SetDefault("maven.base_url", "https://search.maven.org")
	v.SetDefault("maven.timeout", "10s")
	v.SetDefault("maven.retry.max_attempts", 3)
	v.SetDefault("maven.retry.initial_wait", "500ms")
	v.SetDefault("maven.retry.max_wait", "5s")

	v.SetDefault("server.listen_address", "127.0.0.1:8080")
	v.SetDefault("server.shutdown_timeout", "5s")

	// Empty means store.DefaultDBPath
	v.SetDefault("store.path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// GetString gets a string value from the configuration.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetDuration parses a duration value such as "500ms".
func (c *Config) GetDuration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(c.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}

// Set overrides a key, e.g. from a command-line flag.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// GetViper returns the underlying viper instance.
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
