// Package daemon holds the service configuration.
// Config lives in a TOML file; the PORTIONS_BIND_ADDRESS environment
// variable overrides the listen address and takes highest precedence.
package daemon

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Store   StoreConfig   `toml:"store"`
	Metrics MetricsConfig `toml:"metrics"`
}

// APIConfig configures the HTTP listener.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StoreConfig configures the event store.
type StoreConfig struct {
	Path string `toml:"path"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		API:     APIConfig{Host: "0.0.0.0", Port: 3000},
		Store:   StoreConfig{Path: "nutrients.db"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads the config file at path, overlaying it onto the defaults.
// A missing file is not an error — defaults apply.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// BindAddress returns the address the HTTP server listens on.
// PORTIONS_BIND_ADDRESS wins over the config file.
func (c Config) BindAddress() string {
	if addr := os.Getenv("PORTIONS_BIND_ADDRESS"); addr != "" {
		return addr
	}
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}
