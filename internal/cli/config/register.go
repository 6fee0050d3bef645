// Package config provides the doctor and init commands.
package config

import "github.com/spf13/cobra"

// Register adds the configuration commands to root.
func Register(root *cobra.Command) {
	root.AddCommand(newDoctorCmd(), newInitCmd())
}
