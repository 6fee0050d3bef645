// Package cli provides the Cobra commands of recnotify: the batch run and single-set
// check, parameter validation, and the diagnostic and configuration commands registered
// from the util and config subpackages.
package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/recnotify/internal/cli/config"
	"github.com/ariel-frischer/recnotify/internal/cli/shared"
	"github.com/ariel-frischer/recnotify/internal/cli/util"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupBatch         = shared.GroupBatch
	GroupDiagnostics   = shared.GroupDiagnostics
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = NewRootCmd()

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "recnotify",
		Short: "Recreation availability batch notifier",
		Long: `recnotify runs a campsite or tour availability checker once for every parameter
file in a directory and emails the checker's output to the file's recipients when
availability is found.

Designed to run from cron. Sets with nothing available print
"NO RESULTS FOUND - <date>".`,
		Example: `  # Check every parameter file in ./params
  recnotify run

  # Print what would be sent instead of sending it
  recnotify run --dry-run

  # Check a single parameter file
  recnotify check params/yosemite.env

  # Validate parameter files without running the checker
  recnotify validate params/`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddGroup(&cobra.Group{ID: GroupBatch, Title: "Batch:"})
	root.AddGroup(&cobra.Group{ID: GroupDiagnostics, Title: "Diagnostics:"})
	root.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})
	root.SetHelpCommandGroupID(GroupConfiguration)
	root.SetCompletionCommandGroupID(GroupConfiguration)

	root.PersistentFlags().StringP(shared.FlagConfig, "c", shared.DefaultConfigPath, "Path to config file")
	root.PersistentFlags().BoolP(shared.FlagDebug, "d", false, "Enable debug logging")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return shared.WithExitCode(shared.ExitInvalidArguments, err)
	})

	root.AddCommand(newRunCmd(), newCheckCmd(), newValidateCmd())
	util.Register(root)
	config.Register(root)

	return root
}

// Execute runs the root command and prints any error that carries a message.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !shared.Silent(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
