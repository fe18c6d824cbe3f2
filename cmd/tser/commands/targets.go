package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newTargetsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the target languages",
		Long:  "List every target language with its aliases and file extension. Targets generated by default are marked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.setup(cmd)
			if err != nil {
				return err
			}
			registry, err := cfg.Registry()
			if err != nil {
				return err
			}
			enabled, err := cfg.Targets()
			if err != nil {
				return err
			}
			on := make(map[string]bool, len(enabled))
			for _, t := range enabled {
				on[t.Language] = true
			}

			data := pterm.TableData{{"Language", "Aliases", "Extension", "Enabled"}}
			for _, t := range registry.All() {
				mark := ""
				if on[t.Language] {
					mark = "yes"
				}
				data = append(data, []string{t.Language, strings.Join(t.Aliases, ", "), "." + t.Extension, mark})
			}
			return pterm.DefaultTable.
				WithHasHeader().
				WithWriter(cmd.OutOrStdout()).
				WithData(data).
				Render()
		},
	}
}
