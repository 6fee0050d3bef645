package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/recnotify/internal/batch"
	"github.com/ariel-frischer/recnotify/internal/cli/shared"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var opts notifierOptions

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check a single parameter file",
		Long: `Run the checker for one parameter file, notify its recipients when availability
is found, and print the checker output.

Exits 1 when the file is invalid or the checker could not be run.`,
		Example: `  # Check one file and print what would be sent
  recnotify check params/yosemite.env --dry-run`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return shared.WithExitCode(shared.ExitInvalidArguments,
					fmt.Errorf("check requires exactly one parameter file, got %d", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}

			n, err := newNotifier(cmd, cfg, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			outcome := n.ProcessFile(ctx, args[0], 1, 1)
			switch outcome.Status {
			case batch.StatusInvalid, batch.StatusFailed:
				return shared.WithExitCode(shared.ExitValidationFailed, outcome.Err)
			case batch.StatusFound:
				// Dry-run messages already carry the checker output.
				if !opts.dryRun {
					fmt.Fprint(cmd.OutOrStdout(), outcome.Result.Stdout)
				}
			}
			return nil
		},
	}

	cmd.GroupID = shared.GroupBatch
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print notifications instead of sending them")
	return cmd
}
