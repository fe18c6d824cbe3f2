package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/tser/errors"
)

// EnvPrefix prefixes the environment variables that override settings.
const EnvPrefix = "TSER"

// NewViper returns a viper instance with defaults and environment binding
// but no config file.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// Load reads the configuration. An empty configPath searches for am.toml
// from the working directory upwards; finding none is not an error and
// yields the defaults. Relative generate.sources and generate.output are
// resolved against the directory of the config file.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get working directory")
		}
		configPath = FindProjectConfig(wd)
	}

	v := NewViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	cfg.File = configPath
	if configPath != "" {
		cfg.resolvePaths(filepath.Dir(configPath))
	}
	return cfg, nil
}

func (c *Config) resolvePaths(base string) {
	for i, src := range c.Generate.Sources {
		if !filepath.IsAbs(src) {
			c.Generate.Sources[i] = filepath.Join(base, src)
		}
	}
	if c.Generate.Output != "" && !filepath.IsAbs(c.Generate.Output) {
		c.Generate.Output = filepath.Join(base, c.Generate.Output)
	}
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set defaults but don't bind environment variables for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", configPath)
	}
	cfg.File = configPath
	return cfg, nil
}

// FindProjectConfig searches for am.toml by walking up the directory tree
// from dir. Returns the path to the first config file found, or empty
// string if none found.
func FindProjectConfig(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			return ""
		}
		dir = parent
	}
}
