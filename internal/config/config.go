package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"domsl/internal/check"
)

// FileName is the name of the configuration file.
const FileName = "domsl.yaml"

// Defaults.
const (
	DefaultVersion   = "1"
	DefaultRuntime   = "domsl/dom"
	DefaultExtension = ".gox"
)

// Config is the content of domsl.yaml.
type Config struct {
	Version string `yaml:"version"`
	// Runtime is the import path of the dom runtime package.
	Runtime string `yaml:"runtime"`
	// Extension is the extension of markup source files.
	Extension string `yaml:"extension"`
	// ContentModel is ignore, warn or error.
	ContentModel string `yaml:"content_model,omitempty"`
	// GlobalAttributes are accepted on every HTML element.
	GlobalAttributes []string `yaml:"global_attributes,omitempty"`
}

// Default returns the configuration used without a domsl.yaml.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse parses YAML data into a Config and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = DefaultVersion
	}

	if c.Runtime == "" {
		c.Runtime = DefaultRuntime
	}

	if c.Extension == "" {
		c.Extension = DefaultExtension
	}

	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}

	for i, a := range c.GlobalAttributes {
		c.GlobalAttributes[i] = strings.ToLower(strings.TrimSpace(a))
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != DefaultVersion {
		errs = append(errs, fmt.Errorf("unsupported config version %q", c.Version))
	}

	if _, err := check.ParseMode(c.ContentModel); err != nil {
		errs = append(errs, err)
	}

	if c.Extension == ".go" || strings.ContainsAny(c.Extension, `/\`) {
		errs = append(errs, fmt.Errorf("invalid extension %q", c.Extension))
	}

	for _, a := range c.GlobalAttributes {
		if a == "" || strings.ContainsAny(a, " \t=<>\"'/") {
			errs = append(errs, fmt.Errorf("invalid global attribute %q", a))
		}
	}

	return errors.Join(errs...)
}

// Mode returns the content model mode.
func (c *Config) Mode() check.Mode {
	m, _ := check.ParseMode(c.ContentModel)
	return m
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes a Config to the given path.
func WriteFile(c *Config, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
