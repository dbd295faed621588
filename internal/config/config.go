// Package config resolves sweep settings from defaults and environment
// variables. There is no configuration file: every input is per-invocation,
// supplied by flags or INCSWEEP_* environment variables.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds all settings for one sweep invocation.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	// BuildCommand is passed verbatim to the shell in the project root.
	BuildCommand string `mapstructure:"build_command"`

	// Path is the project root to sweep.
	Path string `mapstructure:"path"`

	// Extensions recognized as C/C++ sources and headers.
	Extensions []string `mapstructure:"extensions"`

	// BuildTimeout bounds each build invocation. Zero disables the bound.
	BuildTimeout time.Duration `mapstructure:"build_timeout"`

	// Format is the report output format: table, json, or yaml.
	Format string `mapstructure:"format"`

	// All reports non-redundant and indeterminate includes too.
	All bool `mapstructure:"all"`

	// NoColor disables ANSI color in table output.
	NoColor bool `mapstructure:"no_color"`

	// Silent suppresses progress output.
	Silent bool `mapstructure:"silent"`
}

// Sentinel errors for configuration validation.
var (
	// ErrMissingBuildCommand indicates no build command was supplied.
	ErrMissingBuildCommand = errors.New("build command is required")
	// ErrInvalidBuildTimeout indicates a negative build timeout.
	ErrInvalidBuildTimeout = errors.New("build_timeout must be non-negative")
	// ErrNoExtensions indicates an empty extension list.
	ErrNoExtensions = errors.New("at least one source extension is required")
	// ErrInvalidExtension indicates an extension not starting with a dot.
	ErrInvalidExtension = errors.New("extensions must start with a dot")
	// ErrInvalidFormat indicates an unknown output format name.
	ErrInvalidFormat = errors.New("format must be one of: table, json, yaml")
)

// validFormats mirrors the formats the reporter implements.
var validFormats = map[string]bool{"table": true, "json": true, "yaml": true}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BuildCommand) == "" {
		return ErrMissingBuildCommand
	}

	if c.BuildTimeout < 0 {
		return ErrInvalidBuildTimeout
	}

	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return ErrInvalidExtension
		}
	}

	if !validFormats[c.Format] {
		return ErrInvalidFormat
	}

	return nil
}
