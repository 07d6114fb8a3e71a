// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"
)

var (
	// ErrReadConfig is returned when the configuration file cannot be read.
	ErrReadConfig = errors.New("failed to read configuration file")
	// ErrInvalidYaml is returned when a YAML file cannot be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidHcl is returned when an HCL file cannot be decoded.
	ErrInvalidHcl = errors.New("invalid HCL")
	// ErrUnknownFormat is returned for file extensions other than .yaml, .yml and .hcl.
	ErrUnknownFormat = errors.New("unknown configuration file format")
)

// DefaultFileNames are looked for, in order, by Discover.
var DefaultFileNames = []string{"relay.yaml", "relay.yml", "relay.hcl"}

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
)

// Config is the content of a configuration file.
type Config struct {
	Parallelism int        `yaml:"parallelism" hcl:"parallelism,optional"`
	Log         *LogConfig `yaml:"log" hcl:"log,block"`
	Macros      []*Macro   `yaml:"macros" hcl:"macro,block"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `yaml:"level" hcl:"level,optional"`
	Format     string `yaml:"format" hcl:"format,optional"`
	File       string `yaml:"file" hcl:"file,optional"`
	MaxSizeMB  int    `yaml:"max_size_mb" hcl:"max_size_mb,optional"`
	MaxBackups int    `yaml:"max_backups" hcl:"max_backups,optional"`
}

// Macro is a named command line that can be invoked like a command.
type Macro struct {
	Name        string   `yaml:"name" hcl:"name,label"`
	Aliases     []string `yaml:"aliases" hcl:"aliases,optional"`
	Description string   `yaml:"description" hcl:"description,optional"`
	CommandLine string   `yaml:"command_line" hcl:"command_line"`
}

// Names returns the name followed by the aliases.
func (m *Macro) Names() []string {
	return append([]string{m.Name}, m.Aliases...)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()

	return c
}

func (c *Config) applyDefaults() {
	if c.Log == nil {
		c.Log = &LogConfig{}
	}

	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = defaultMaxSizeMB
	}

	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = defaultMaxBackups
	}
}

// Load reads, decodes and validates the file at path.
func Load(fs afero.Fs, path string) (*Config, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Join(ErrReadConfig, err)
	}

	c, err := Decode(path, src)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Decode decodes src; the format is chosen by the extension of filename.
// The result has defaults applied but is not validated.
func Decode(filename string, src []byte) (*Config, error) {
	c := &Config{}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(src, c, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidYaml, filename, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filename, src, nil, c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHcl, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}

	c.applyDefaults()

	return c, nil
}

// Discover returns the first of DefaultFileNames that exists in dir.
func Discover(fs afero.Fs, dir string) (string, bool) {
	for _, name := range DefaultFileNames {
		p := filepath.Join(dir, name)
		if ok, _ := afero.Exists(fs, p); ok {
			return p, true
		}
	}

	return "", false
}
