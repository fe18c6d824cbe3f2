package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/frontend"
	"github.com/teranos/tser/ir"
)

func newIRCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ir <file>",
		Short: "Show the lowered IR of a schema file",
		Long: `Parse and lower a schema file and print the resulting IR.

Services are included; they fail only at generation time.

Examples:
  tser ir api.ts
  tser ir api.ts --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", args[0])
			}
			file, err := frontend.ParseFile(args[0], src)
			if err != nil {
				return err
			}
			out, err := ir.Dump(file, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", ir.FormatYAML, "Output format: yaml, json")
	return cmd
}
