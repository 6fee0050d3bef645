package shared

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/recnotify/internal/config"
	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
)

// Global flag names registered on the root command.
const (
	FlagConfig = "config"
	FlagDebug  = "debug"
)

// DefaultConfigPath is the project-level config file.
const DefaultConfigPath = ".recnotify/config.yml"

// LoadConfig loads the configuration named by the --config flag.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString(FlagConfig)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, WithExitCode(ExitInvalidArguments, fmt.Errorf("loading config: %w", err))
	}
	return cfg, nil
}

// NewLogger returns the root logger writing logfmt to the command's stderr.
// Records below info are dropped unless --debug is set.
func NewLogger(cmd *cobra.Command) log15.Logger {
	debug, _ := cmd.Flags().GetBool(FlagDebug)
	return NewLoggerTo(cmd.ErrOrStderr(), debug)
}

// NewLoggerTo returns a logger writing logfmt records to w.
func NewLoggerTo(w io.Writer, debug bool) log15.Logger {
	lvl := log15.LvlInfo
	if debug {
		lvl = log15.LvlDebug
	}

	log := log15.New("module", "recnotify")
	log.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(w, log15.LogfmtFormat())))
	return log
}

// ArgsExitCode wraps a positional-argument validator so its errors exit with
// ExitInvalidArguments, matching flag errors.
func ArgsExitCode(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return WithExitCode(ExitInvalidArguments, err)
		}
		return nil
	}
}
