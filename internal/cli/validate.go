package cli

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/recnotify/internal/cli/shared"
	"github.com/ariel-frischer/recnotify/internal/params"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate parameter files without running the checker",
		Long: `Load every parameter file in the directory (default: params_dir from config) and
report files with missing or malformed keys. Exits 1 if any file is invalid.`,
		Example: `  recnotify validate
  recnotify validate ./params`,
		Args: shared.ArgsExitCode(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			} else {
				cfg, err := shared.LoadConfig(cmd)
				if err != nil {
					return err
				}
				dir = cfg.ParamsDir
			}

			report, err := params.ValidateDir(dir)
			if err != nil {
				return shared.WithExitCode(shared.ExitInvalidArguments, err)
			}

			printValidation(cmd, report)

			if len(report.Errors) > 0 {
				return shared.NewExitError(shared.ExitValidationFailed)
			}
			return nil
		},
	}

	cmd.GroupID = shared.GroupBatch
	return cmd
}

func printValidation(cmd *cobra.Command, report *params.DirReport) {
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, set := range report.Valid {
		fmt.Fprintf(out, "%s %s (%s: %s; %d recipients)\n",
			green("✓"), set.Name, set.Kind, strings.Join(set.Args(), " "), set.Recipients())
	}
	for _, err := range report.Errors {
		fmt.Fprintf(out, "%s %v\n", red("✗"), err)
	}
	fmt.Fprintf(out, "\n%d valid, %d invalid\n", len(report.Valid), len(report.Errors))
}
