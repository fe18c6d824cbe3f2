// Package commands implements the tser command line.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/teranos/tser/am"
	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/logger"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	verbosity  int
	configPath string
}

// NewRootCmd builds the tser command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "tser",
		Short: "Compile TypeScript type declarations to Rust, Swift, TypeScript and Python",
		Long: `tser - compile TypeScript type declarations to other languages.

tser reads interfaces, enums and tagged unions from TypeScript declaration
files and generates matching serializable types for each target language.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (TSER_* prefix, e.g. TSER_GENERATE_OUTPUT)
3. Project config (am.toml, searched from the working directory upwards)
4. Default values

Examples:
  tser init                          # Write a starter am.toml
  tser generate schema/api.ts        # Print generated code to stdout
  tser generate -o generated         # Write generated/<language>/ for every source
  tser generate --watch              # Regenerate on every save
  tser check                         # Fail when generated files are stale
  tser ir schema/api.ts              # Show the lowered IR`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default: am.toml found from the working directory)")

	root.AddCommand(
		newGenerateCmd(g),
		newCheckCmd(g),
		newIRCmd(),
		newInitCmd(g),
		newTargetsCmd(g),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger for a command run.
func (g *globals) setup(cmd *cobra.Command) (*am.Config, *zap.SugaredLogger, error) {
	cfg, err := am.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(logger.Options{
		JSON:      cfg.Log.JSON,
		Verbosity: g.verbosity,
		Color:     isTerminal(cmd.ErrOrStderr()),
		Output:    zapcore.AddSync(cmd.ErrOrStderr()),
	})

	if cfg.File != "" {
		log.Debugw("config loaded", "file", cfg.File, "verbosity", logger.LevelName(g.verbosity))
		unknown, err := am.UnknownKeys(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		for _, key := range unknown {
			log.Warnw("unknown config key", "key", key, "file", cfg.File)
		}
	}
	return cfg, log, nil
}

// status returns pterm printers that write to the command's stderr, so
// stdout carries only generated output.
func status(cmd *cobra.Command) (success, warning *pterm.PrefixPrinter) {
	w := cmd.ErrOrStderr()
	return pterm.Success.WithWriter(w), pterm.Warning.WithWriter(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintError writes err and its hints the way the CLI reports failures.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

// ExitCode maps an error returned by a command to the process exit code:
// 1 when generated files are out of date, 2 for any other failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errors.ErrOutOfDate):
		return 1
	default:
		return 2
	}
}
