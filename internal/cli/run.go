package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/recnotify/internal/cli/shared"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		opts   notifierOptions
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Check every parameter file and notify recipients",
		Long: `Run the availability checker once for every parameter file in the parameter
directory, in filename order.

For each file:
  - invalid files are logged and skipped
  - when the checker signals availability, its output is sent to every recipient
  - otherwise "NO RESULTS FOUND - <date>" is printed

The exit code is 0 even when sets fail, so cron keeps running. Use --strict to exit
1 when any set failed or was invalid.`,
		Example: `  # Run with the configured parameter directory
  recnotify run

  # Use another directory and print messages instead of sending them
  recnotify run --params-dir ./tours --dry-run`,
		Args: shared.ArgsExitCode(cobra.NoArgs),
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

			summary, err := n.Run(ctx)
			if err != nil {
				if summary == nil {
					return shared.WithExitCode(shared.ExitInvalidArguments, err)
				}
				return err
			}

			if strict && summary.HasErrors() {
				return shared.WithExitCode(shared.ExitValidationFailed,
					fmt.Errorf("%d parameter sets failed, %d invalid", summary.Failed, summary.Invalid))
			}
			return nil
		},
	}

	cmd.GroupID = shared.GroupBatch
	cmd.Flags().StringVar(&opts.paramsDir, "params-dir", "", "Parameter directory (overrides params_dir)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print notifications instead of sending them")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit 1 when any parameter set failed or was invalid")
	return cmd
}

// commandContext returns the command's context or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
