// Package config provides configuration types and loading for the idkit
// service: the generator parameters, the admin listen address, and logging.
package config

import (
	"fmt"

	"github.com/getidkit/idkit/internal/id"
)

// ServerConfig defines where the admin API listens.
type ServerConfig struct {
	// Host is the listen address. Empty means all interfaces.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	// Port is the listen port.
	Port int `json:"port" yaml:"port"`
}

// GeneratorConfig defines the identifier generator parameters.
type GeneratorConfig struct {
	// Alphabet is the ordered set of symbols identifiers are composed of.
	Alphabet string `json:"alphabet,omitempty" yaml:"alphabet,omitempty"`
	// Length is the number of symbols per identifier.
	Length int `json:"length,omitempty" yaml:"length,omitempty"`
	// MaxAttempts bounds collision retries per Generate call.
	MaxAttempts int `json:"maxAttempts,omitempty" yaml:"maxAttempts,omitempty"`
}

// LoggingConfig defines log output options.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is the output format: text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Config is the root service configuration.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}

// DefaultPort is the default admin API port.
const DefaultPort = 4690

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: DefaultPort},
		Generator: GeneratorConfig{
			Alphabet:    id.DefaultAlphabet,
			Length:      id.DefaultLength,
			MaxAttempts: id.DefaultMaxAttempts,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// applyDefaults fills zero-valued fields after a load.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Generator.Alphabet == "" {
		c.Generator.Alphabet = id.DefaultAlphabet
	}
	if c.Generator.Length == 0 {
		c.Generator.Length = id.DefaultLength
	}
	if c.Generator.MaxAttempts == 0 {
		c.Generator.MaxAttempts = id.DefaultMaxAttempts
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks the configuration for values the service cannot run with.
// Generator fields are validated by constructing a generator with them, so
// the rules here can never drift from what NewGenerator accepts.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range 1-65535", c.Server.Port)
	}
	if _, err := id.NewGenerator(
		id.WithAlphabet(c.Generator.Alphabet),
		id.WithLength(c.Generator.Length),
		id.WithMaxAttempts(c.Generator.MaxAttempts),
	); err != nil {
		return fmt.Errorf("generator config: %w", err)
	}
	return nil
}

// NewGenerator builds a generator from the configured parameters.
func (c *Config) NewGenerator(opts ...id.Option) (*id.Generator, error) {
	base := []id.Option{
		id.WithAlphabet(c.Generator.Alphabet),
		id.WithLength(c.Generator.Length),
		id.WithMaxAttempts(c.Generator.MaxAttempts),
	}
	return id.NewGenerator(append(base, opts...)...)
}
