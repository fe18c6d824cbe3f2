package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/tser/am"
	"github.com/teranos/tser/driver"
	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/watch"
)

// generateFlags override the [generate] section of the configuration.
type generateFlags struct {
	langs  []string
	output string
	jobs   int
	index  bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.langs, "lang", "l", nil, "Target languages or aliases, comma separated, or \"all\" (default: generate.targets)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output directory (default: generate.output)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "Files compiled concurrently (default: generate.jobs)")
	cmd.Flags().BoolVar(&f.index, "index", false, "Also write index.ts / mod.rs modules (default: generate.index)")
}

func (f *generateFlags) apply(cmd *cobra.Command, cfg *am.Config) {
	if cmd.Flags().Changed("lang") {
		cfg.Generate.Targets = f.langs
	}
	if cmd.Flags().Changed("output") {
		cfg.Generate.Output = f.output
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Generate.Jobs = f.jobs
	}
	if cmd.Flags().Changed("index") {
		cfg.Generate.Index = f.index
	}
}

func newGenerateCmd(g *globals) *cobra.Command {
	var (
		flags   generateFlags
		watchOn bool
	)
	cmd := &cobra.Command{
		Use:   "generate [files...]",
		Short: "Generate code from schema files",
		Long: `Generate code for every target language from TypeScript schema files.

Files default to the generate.sources globs. Each file compiles for every
target or not at all; output goes to <output>/<language>/<name>.<ext>.
Without an output directory the generated code is printed to stdout.

Examples:
  tser generate api.ts                    # Print every target to stdout
  tser generate api.ts -l rust            # Print Rust only
  tser generate -o generated              # Write all configured sources
  tser generate -o generated -l all --index
  tser generate --watch                   # Regenerate whenever a source changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.setup(cmd)
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)

			files, err := sourceFiles(cfg, args)
			if err != nil {
				return err
			}
			d, err := driver.New(cfg, log)
			if err != nil {
				return err
			}

			if cfg.Generate.Output == "" {
				if watchOn {
					return errors.WithHint(
						errors.New("--watch needs an output directory"),
						"pass -o or set generate.output in am.toml")
				}
				return printOutputs(cmd, d, files)
			}

			err = generateOnce(cmd, d, cfg, files)
			if !watchOn {
				return err
			}
			if err != nil {
				PrintError(cmd.ErrOrStderr(), err)
			}

			w, err := watch.New(files, log)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, warning := status(cmd)
			warning.Printfln("Watching %d files, press Ctrl-C to stop", len(files))
			return w.Run(ctx, func(changed []string) {
				log.Infow("regenerating", "changed", changed)
				if err := generateOnce(cmd, d, cfg, files); err != nil {
					PrintError(cmd.ErrOrStderr(), err)
				}
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&watchOn, "watch", "w", false, "Keep running and regenerate when a source file changes")
	return cmd
}

// sourceFiles returns args, or the expansion of generate.sources when no
// files were named.
func sourceFiles(cfg *am.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Generate.Sources) == 0 {
		return nil, errors.WithHint(
			errors.New("no schema files given"),
			"pass files as arguments or set generate.sources in am.toml (tser init writes one)")
	}
	return driver.Sources(cfg.Generate.Sources)
}

func generateOnce(cmd *cobra.Command, d *driver.Driver, cfg *am.Config, files []string) error {
	outputs, err := d.Run(cmd.Context(), files)
	if err != nil {
		return err
	}
	success, _ := status(cmd)
	success.Printfln("Generated %d files from %d schemas in %s", len(outputs), len(files), cfg.Generate.Output)
	return nil
}

// printOutputs writes every generated file to stdout, each preceded by a
// comment naming its language and path.
func printOutputs(cmd *cobra.Command, d *driver.Driver, files []string) error {
	outputs, err := d.Outputs(cmd.Context(), files)
	out := cmd.OutOrStdout()
	for i, o := range outputs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "// Language: %s\n", o.Language)
		fmt.Fprintf(out, "// File: %s\n", o.Path)
		fmt.Fprint(out, o.Content)
	}
	return err
}
