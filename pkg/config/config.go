// Package config re-exports enrollment client configuration
package config

import config_internal "github.com/arpansaha13/enrollkit/internal/config"

type Config = config_internal.Config

func Default() *Config {
	return config_internal.Default()
}

func Load() (*Config, error) {
	return config_internal.Load()
}

func LoadFile(path string, overrides ...func(*Config)) (*Config, error) {
	return config_internal.LoadFile(path, overrides...)
}

func LoadServerFile(path string, overrides ...func(*Config)) (*Config, error) {
	return config_internal.LoadServerFile(path, overrides...)
}
