package cmd

import (
	"github.com/spf13/cobra"

	"provcheck/internal/adapters/report"
	"provcheck/internal/application/commands"
)

func newListCmd(a *app) *cobra.Command {
	var jsonOut bool

	listCmd := &cobra.Command{
		Use:   "list <path>",
		Short: "List the profiles a check would scan",
		Long: `List resolves a folder, profile or .ipa archive the same way check does
and prints the profiles found, without reading them.

Examples:
  provcheck list ./profiles
  provcheck list MyApp.ipa --json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := commands.NewListCommand(a.resolver(), args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return report.WriteListJSON(out, res)
			}
			return report.NewTextWriter(out, a.cfg.Suffix).WriteList(res)
		},
	}

	listCmd.Flags().BoolVar(&jsonOut, "json", false, "print the listing as JSON")

	return listCmd
}
