package am

import (
	"github.com/teranos/tser/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Generate.Jobs <= 0 {
		return errors.WithHint(
			errors.Newf("generate.jobs must be > 0, got %d", c.Generate.Jobs),
			"omit generate.jobs for the default of 4")
	}

	if c.TypeScript.Indent < 1 || c.TypeScript.Indent > 8 {
		return errors.Newf("typescript.indent must be between 1 and 8, got %d", c.TypeScript.Indent)
	}

	switch c.Swift.Access {
	case "public", "internal":
	default:
		return errors.Newf("swift.access must be \"public\" or \"internal\", got %q", c.Swift.Access)
	}

	if _, err := c.Targets(); err != nil {
		return errors.Wrap(err, "generate.targets")
	}
	return nil
}

// ValidateForWrite checks the configuration for commands that write or
// compare files on disk, which need an output directory.
func (c *Config) ValidateForWrite() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Generate.Output == "" {
		return errors.WithHint(
			errors.New("generate.output cannot be empty"),
			"set generate.output in am.toml or pass -o")
	}
	return nil
}
