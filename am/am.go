// Package am loads the tser configuration.
//
// Settings come from, lowest precedence first: built-in defaults, the
// project am.toml (found by walking up from the working directory, or
// given explicitly), and TSER_* environment variables where the dots of a
// key become underscores (TSER_GENERATE_JOBS overrides generate.jobs).
package am

import (
	"github.com/teranos/tser/typegen"
	"github.com/teranos/tser/typegen/targets"
)

// Config represents the tser configuration
type Config struct {
	Generate   GenerateConfig   `mapstructure:"generate" toml:"generate"`
	Rust       RustConfig       `mapstructure:"rust" toml:"rust"`
	Swift      SwiftConfig      `mapstructure:"swift" toml:"swift"`
	TypeScript TypeScriptConfig `mapstructure:"typescript" toml:"typescript"`
	Log        LogConfig        `mapstructure:"log" toml:"log"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-" toml:"-"`
}

// GenerateConfig configures which schemas are compiled and where output goes
type GenerateConfig struct {
	Sources []string `mapstructure:"sources" toml:"sources"` // Glob patterns of schema files
	Output  string   `mapstructure:"output" toml:"output"`   // Output directory; one subdirectory per language
	Targets []string `mapstructure:"targets" toml:"targets"` // Language names or aliases, "all" for every target
	Jobs    int      `mapstructure:"jobs" toml:"jobs"`       // Files compiled concurrently (default: 4)
	Index   bool     `mapstructure:"index" toml:"index"`     // Write index.ts / mod.rs next to the generated files
}

// RustConfig configures the Rust backend
type RustConfig struct {
	Derives []string `mapstructure:"derives" toml:"derives"`
}

// SwiftConfig configures the Swift backend
type SwiftConfig struct {
	Protocols []string `mapstructure:"protocols" toml:"protocols"`
	Access    string   `mapstructure:"access" toml:"access"` // "public" or "internal"
}

// TypeScriptConfig configures the TypeScript backend
type TypeScriptConfig struct {
	Indent int `mapstructure:"indent" toml:"indent"` // Spaces per level (default: 2)
}

// LogConfig configures logging
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json"`
}

// ConfigFileName is the project config file searched for by Load.
const ConfigFileName = "am.toml"

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// Options maps the backend sections onto generator options.
func (c *Config) Options() typegen.Options {
	return typegen.Options{
		RustDerives:      c.Rust.Derives,
		SwiftProtocols:   c.Swift.Protocols,
		SwiftAccess:      c.Swift.Access,
		TypeScriptIndent: c.TypeScript.Indent,
	}
}

// Registry builds the target registry configured by c.
func (c *Config) Registry() (*typegen.Registry, error) {
	return targets.Registry(c.Options())
}

// Targets resolves generate.targets against the configured registry.
func (c *Config) Targets() ([]typegen.Target, error) {
	r, err := c.Registry()
	if err != nil {
		return nil, err
	}
	return r.Resolve(c.Generate.Targets)
}
