// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the logicsim YAML configuration file.
//
// A complete file with the default values:
//
//	log:
//	  level: info
//	  format: auto
//	  file: ""
//	server:
//	  addr: localhost:8080
//	  metrics_addr: localhost:9090
//	  ws_rate: 20
//	  ws_burst: 40
//	  max_sessions: 64
//	tracing:
//	  enabled: false
//	  pretty: false
//	tui:
//	  show_wires: true
//
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/db47h/logicsim/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top level configuration.
//
type Config struct {
	Log     logging.Config `yaml:"log"`
	Server  Server         `yaml:"server"`
	Tracing Tracing        `yaml:"tracing"`
	TUI     TUI            `yaml:"tui"`
}

// Server configures the HTTP View.
//
type Server struct {
	Addr        string `yaml:"addr" validate:"required,hostname_port"`
	MetricsAddr string `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	// WebSocket commands per second and burst, per connection.
	WSRate      float64 `yaml:"ws_rate" validate:"gt=0"`
	WSBurst     int     `yaml:"ws_burst" validate:"gte=1"`
	MaxSessions int     `yaml:"max_sessions" validate:"gte=1"`
}

// Tracing configures OpenTelemetry tracing.
//
type Tracing struct {
	Enabled bool `yaml:"enabled"`
	Pretty  bool `yaml:"pretty"`
}

// TUI configures the terminal View.
//
type TUI struct {
	ShowWires bool `yaml:"show_wires"`
}

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		Log: logging.Config{Level: "info", Format: logging.FormatAuto},
		Server: Server{
			Addr:        "localhost:8080",
			MetricsAddr: "localhost:9090",
			WSRate:      20,
			WSBurst:     40,
			MaxSessions: 64,
		},
		TUI: TUI{ShowWires: true},
	}
}

var validate = validator.New()

// Validate checks field values.
//
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// Load reads the configuration file at path over the defaults. An empty path
// returns the defaults.
//
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	defer f.Close()
	c, err := Read(f)
	return c, errors.Wrap(err, path)
}

// Read decodes a configuration from r over the defaults and validates it.
// Unknown keys are errors.
//
func Read(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parse configuration")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal returns the YAML encoding of c.
//
func (c *Config) Marshal() ([]byte, error) {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(err, "encode configuration")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encode configuration")
	}
	return b.Bytes(), nil
}
