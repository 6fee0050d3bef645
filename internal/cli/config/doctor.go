package config

import (
	"fmt"

	"github.com/ariel-frischer/recnotify/internal/cli/shared"
	"github.com/ariel-frischer/recnotify/internal/health"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"doc"},
		Short:   "Run health checks for recnotify dependencies",
		Long: `Run health checks to verify that everything a batch run needs is in place.

This command checks:
  - the campsite and tours checker executables (and scripts)
  - the mail transport (mail command, or SENDGRID_API_KEY)
  - Twilio credentials when sms_from is set
  - the parameter directory

Each check will display a ✓ if passed or ✗ with an error message if failed.`,
		Example: `  recnotify doctor`,
		Args:    shared.ArgsExitCode(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}

			report := health.RunHealthChecks(cfg)
			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

			if !report.Passed {
				return shared.NewExitError(shared.ExitMissingDependency)
			}
			return nil
		},
	}

	cmd.GroupID = shared.GroupDiagnostics
	return cmd
}
