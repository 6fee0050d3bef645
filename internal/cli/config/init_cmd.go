package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/recnotify/internal/cli/shared"
	"github.com/ariel-frischer/recnotify/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to the project config file (--config, default
.recnotify/config.yml) or, with --global, to ~/.recnotify/config.yml.

If the file already exists, it is left unchanged (use --force to overwrite).

Configuration precedence (highest to lowest):
  1. Environment variables (RECNOTIFY_*)
  2. Project config (.recnotify/config.yml)
  3. Global config (~/.recnotify/config.yml)
  4. Built-in defaults`,
		Example: `  # Create .recnotify/config.yml
  recnotify init

  # Create the global config
  recnotify init --global

  # Overwrite existing config with defaults
  recnotify init --force`,
		Args: shared.ArgsExitCode(cobra.NoArgs),
		RunE: runInit,
	}

	cmd.GroupID = shared.GroupConfiguration
	cmd.Flags().BoolP("global", "g", false, "Create the global config (~/.recnotify/config.yml)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing config with defaults")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	global, _ := cmd.Flags().GetBool("global")
	force, _ := cmd.Flags().GetBool("force")

	path, _ := cmd.Flags().GetString(shared.FlagConfig)
	if global {
		var err error
		if path, err = config.GlobalConfigPath(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(out, "%s Config already exists: %s (use --force to overwrite)\n", yellow("!"), path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "%s Created %s\n", green("✓"), path)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Set campsite_cmd/tours_cmd to your checker scripts")
	fmt.Fprintln(out, "  2. Add parameter files to params_dir")
	fmt.Fprintln(out, "  3. Run 'recnotify doctor' to check dependencies")
	return nil
}
