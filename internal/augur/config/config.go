package config

import (
	"github.com/sibylline/sibyl/internal/augur/options"
)

// Config is the running configuration structure of the augur service.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance based
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
