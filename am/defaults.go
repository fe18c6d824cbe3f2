package am

import (
	"github.com/spf13/viper"

	"github.com/teranos/tser/typegen/rust"
	"github.com/teranos/tser/typegen/swift"
	"github.com/teranos/tser/typegen/targets"
	"github.com/teranos/tser/typegen/typescript"
)

// Default values
const (
	DefaultJobs        = 4
	DefaultSwiftAccess = "public"
)

// SetDefaults configures default values for all configuration options.
// Every key gets a default, including empty ones, so that viper binds the
// matching environment variable.
func SetDefaults(v *viper.Viper) {
	// Generate defaults
	v.SetDefault("generate.sources", []string{})
	v.SetDefault("generate.output", "")
	v.SetDefault("generate.targets", targets.Defaults)
	v.SetDefault("generate.jobs", DefaultJobs)
	v.SetDefault("generate.index", false)

	// Backend defaults
	v.SetDefault("rust.derives", rust.DefaultDerives)
	v.SetDefault("swift.protocols", swift.DefaultProtocols)
	v.SetDefault("swift.access", DefaultSwiftAccess)
	v.SetDefault("typescript.indent", typescript.DefaultIndent)

	// Log defaults
	v.SetDefault("log.json", false)
}

// Default returns the configuration SetDefaults describes.
func Default() *Config {
	return &Config{
		Generate: GenerateConfig{
			Sources: []string{},
			Targets: append([]string(nil), targets.Defaults...),
			Jobs:    DefaultJobs,
		},
		Rust:       RustConfig{Derives: append([]string(nil), rust.DefaultDerives...)},
		Swift:      SwiftConfig{Protocols: append([]string(nil), swift.DefaultProtocols...), Access: DefaultSwiftAccess},
		TypeScript: TypeScriptConfig{Indent: typescript.DefaultIndent},
	}
}

// Starter is the configuration `tser init` writes: the defaults plus a
// conventional source glob and output directory.
func Starter() *Config {
	cfg := Default()
	cfg.Generate.Sources = []string{"schema/*.ts"}
	cfg.Generate.Output = "generated"
	return cfg
}
