package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"provcheck/internal/adapters/report"
	"provcheck/internal/adapters/tui"
	"provcheck/internal/application"
	"provcheck/internal/application/commands"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		jsonOut     bool
		interactive bool
		workers     int
		maxBytes    int64
	)

	checkCmd := &cobra.Command{
		Use:   "check <identifier> <path>",
		Short: "Check that every profile contains an identifier",
		Long: `Check reports which provisioning profiles contain the identifier and which
do not. The path may be a folder (searched recursively), a single profile,
or an .ipa archive, which is unpacked into a temporary directory that is
always removed afterwards.

The identifier is matched as raw bytes. Files that cannot be read are
listed as missing and reported on stderr.

Examples:
  provcheck check 00008030-001A2B3C4D5E6F ./profiles
  provcheck check 00008030-001A2B3C4D5E6F MyApp.ipa --json
  provcheck check 00008030-001A2B3C4D5E6F ./profiles -j 8 -i`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut && interactive {
				return &application.UsageError{Err: errors.New("--json and --interactive cannot be used together")}
			}
			flags := cmd.Flags()
			if flags.Changed("workers") {
				a.cfg.Workers = workers
			}
			if flags.Changed("max-bytes") {
				if maxBytes < 0 {
					return &application.UsageError{Err: fmt.Errorf("--max-bytes must not be negative, got %d", maxBytes)}
				}
				a.cfg.MaxFileBytes = maxBytes
			}

			identifier, path := args[0], args[1]
			out := cmd.OutOrStdout()
			check := commands.NewCheckCommand(a.resolver(), a.scanner(), identifier, path).
				WithWorkers(a.cfg.Workers).
				WithLogger(a.logger)

			if interactive {
				_, err := tui.Run(cmd.Context(), out, check, a.cfg.Suffix)
				return err
			}

			if jsonOut {
				rep, err := check.Execute(cmd.Context())
				if err != nil {
					return err
				}
				return report.WriteJSON(out, rep)
			}

			rep, err := check.WithObserver(report.NewObserver(out, identifier, a.cfg.Suffix)).Execute(cmd.Context())
			if err != nil {
				return err
			}
			return report.NewTextWriter(out, a.cfg.Suffix).WriteReport(rep)
		},
	}

	checkCmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")
	checkCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "show progress in an interactive view")
	checkCmd.Flags().IntVarP(&workers, "workers", "j", 1, "number of files scanned concurrently")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "treat files larger than this as unreadable (0 = no limit)")

	return checkCmd
}
