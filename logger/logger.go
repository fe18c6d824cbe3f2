// Package logger builds the zap loggers used by the tser command.
//
// There is no package-level logger. The CLI builds one from its flags and
// configuration and hands it to the packages that log (driver, watch).
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// JSON selects zap's production JSON encoder instead of the console encoder
	JSON bool
	// Verbosity is the -v flag count, mapped with VerbosityToLevel
	Verbosity int
	// Color enables ANSI colors in console output
	Color bool
	// Output defaults to stderr, keeping stdout free for generated code
	Output zapcore.WriteSyncer
}

// New builds a logger from opts.
func New(opts Options) *zap.SugaredLogger {
	out := opts.Output
	if out == nil {
		out = zapcore.Lock(os.Stderr)
	}
	level := VerbosityToLevel(opts.Verbosity)

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = newMinimalEncoder(opts.Color)
	}

	core := zapcore.NewCore(enc, out, level)
	return zap.New(core).Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
