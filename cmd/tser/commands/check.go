package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/tser/driver"
	"github.com/teranos/tser/errors"
)

func newCheckCmd(g *globals) *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check that generated files are up to date",
		Long: `Check if generated files match the current schema files.

The schemas are compiled in memory and compared with the files under the
output directory. Generated-code banner lines are ignored, so a tser
upgrade alone does not make files stale.

Exit codes:
  0 - Generated files are up to date
  1 - Generated files are out of date (differences listed)
  2 - Error during check

Examples:
  tser check                      # Check every configured source
  tser check -o generated api.ts  # Check one schema`,
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

			result, err := d.Check(cmd.Context(), files)
			if err != nil {
				return err
			}

			success, warning := status(cmd)
			if result.UpToDate {
				success.Println("Generated files are up to date")
				return nil
			}

			warning.Println("Generated files are out of date")
			for _, lang := range result.Languages() {
				warning.Printfln("%s files differ:", lang)
				for _, file := range result.Differences[lang] {
					warning.Printfln("  - %s", file)
				}
			}
			return errors.WithHint(
				errors.Mark(errors.Newf("generated files in %s are out of date", cfg.Generate.Output), errors.ErrOutOfDate),
				"run 'tser generate' to update them")
		},
	}
	flags.register(cmd)
	return cmd
}
