package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teranos/tser/am"
	"github.com/teranos/tser/errors"
)

func newInitCmd(g *globals) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter am.toml",
		Long: `Write a starter configuration file with every setting at its default.

The file is written to ./am.toml unless a path (or --config) is given.
An existing file is only replaced with --force; the previous version is
kept as <path>.back1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = am.ConfigFileName
			}
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, am.ConfigFileName)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(
					errors.Newf("%s already exists", path),
					"pass --force to overwrite it; the old file is kept as a .back1 backup")
			}
			if err := am.WriteDefault(path); err != nil {
				return err
			}

			success, _ := status(cmd)
			success.Printfln("Wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}
