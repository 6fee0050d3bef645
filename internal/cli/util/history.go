package util

import (
	"fmt"

	"github.com/ariel-frischer/recnotify/internal/cli/shared"
	"github.com/ariel-frischer/recnotify/internal/history"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View the outcome of past parameter set checks",
		Long: `View a log of every parameter set processed by run and check, newest first, with
timestamp, status, exit code, checker duration and notifications delivered.`,
		Example: `  # Last 20 entries
  recnotify history -n 20

  # Only sets where availability was found
  recnotify history --status found`,
		Args: shared.ArgsExitCode(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return runHistoryWithStateDir(cmd, cfg.StateDir)
		},
	}

	cmd.GroupID = shared.GroupDiagnostics
	cmd.Flags().IntP("limit", "n", 0, "Limit to the N most recent entries")
	cmd.Flags().Bool("clear", false, "Clear all history")
	cmd.Flags().String("status", "", "Filter by status (found, not_found, failed, invalid)")
	return cmd
}

// runHistoryWithStateDir runs the history command against stateDir.
func runHistoryWithStateDir(cmd *cobra.Command, stateDir string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	statusFilter, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit < 0 {
		return shared.WithExitCode(shared.ExitInvalidArguments, fmt.Errorf("limit must be positive, got %d", limit))
	}
	if statusFilter != "" && !history.ValidStatus(statusFilter) {
		return shared.WithExitCode(shared.ExitInvalidArguments,
			fmt.Errorf("unknown status %q (must be found, not_found, failed or invalid)", statusFilter))
	}

	if clearFlag {
		if err := history.ClearHistory(stateDir); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(stateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := histFile.Filter(statusFilter, limit)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), buildEmptyMessage(statusFilter))
		return nil
	}

	displayEntries(cmd, entries)
	return nil
}

// buildEmptyMessage creates an appropriate message when no entries match filters.
func buildEmptyMessage(statusFilter string) string {
	if statusFilter != "" {
		return fmt.Sprintf("No matching entries for status '%s'.", statusFilter)
	}
	return "No history available."
}

// displayEntries formats and displays history entries.
func displayEntries(cmd *cobra.Command, entries []history.Entry) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, entry := range entries {
		kind := entry.Kind
		if kind == "" {
			kind = "-"
		}
		duration := entry.Duration
		if duration == "" {
			duration = "-"
		}

		fmt.Fprintf(out, "%s  %-34s  %s  %-24s  %-8s  exit=%-3d  %-8s  sent=%d\n",
			cyan(entry.Timestamp.Local().Format("2006-01-02 15:04:05")),
			formatID(entry.ID),
			formatStatus(entry.Status),
			entry.ParamSet,
			kind,
			entry.ExitCode,
			duration,
			entry.Delivered,
		)
		if entry.Error != "" {
			fmt.Fprintf(out, "    %s\n", entry.Error)
		}
	}
}

// formatStatus returns a color-coded, padded status string.
func formatStatus(status string) string {
	padded := fmt.Sprintf("%-9s", status)
	switch status {
	case history.StatusFound:
		return color.New(color.FgGreen).Sprint(padded)
	case history.StatusFailed, history.StatusInvalid:
		return color.New(color.FgRed).Sprint(padded)
	default:
		return padded
	}
}

// formatID truncates the ID to 34 characters, or returns "-" when missing.
func formatID(id string) string {
	if id == "" {
		id = "-"
	}
	if len(id) > 34 {
		return id[:34]
	}
	return id
}
