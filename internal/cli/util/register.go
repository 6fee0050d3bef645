// Package util provides the history and version commands.
package util

import "github.com/spf13/cobra"

// Register adds the util commands to root.
func Register(root *cobra.Command) {
	root.AddCommand(newHistoryCmd(), newVersionCmd())
}
