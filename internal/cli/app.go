package cli

import (
	"io"
	"os"

	"github.com/ariel-frischer/recnotify/internal/batch"
	"github.com/ariel-frischer/recnotify/internal/checker"
	"github.com/ariel-frischer/recnotify/internal/cli/shared"
	"github.com/ariel-frischer/recnotify/internal/config"
	"github.com/ariel-frischer/recnotify/internal/history"
	"github.com/ariel-frischer/recnotify/internal/notify"
	"github.com/ariel-frischer/recnotify/internal/progress"
	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
)

// notifierOptions are the command-line overrides shared by run and check.
type notifierOptions struct {
	paramsDir string
	dryRun    bool
}

// newChecker builds the checker from configuration.
func newChecker(cfg *config.Configuration) (*checker.Checker, error) {
	policy, err := checker.ParsePolicy(cfg.Signal)
	if err != nil {
		return nil, shared.WithExitCode(shared.ExitInvalidArguments, err)
	}

	c := checker.New(
		checker.Command{Name: "campsite", Cmd: cfg.CampsiteCmd, Args: cfg.CampsiteArgs},
		checker.Command{Name: "tours", Cmd: cfg.ToursCmd, Args: cfg.ToursArgs},
	)
	c.Policy = policy
	c.Timeout = cfg.TimeoutDuration()
	c.Debug = cfg.CheckerDebug
	return c, nil
}

// newHandler builds the notification handler. In dry-run mode every message is
// printed to out instead of being sent.
func newHandler(log log15.Logger, cfg *config.Configuration, dryRun bool, out io.Writer) *notify.Handler {
	log = log.New("component", "notify")

	if dryRun {
		d := notify.NewDryRunSender(out)
		return notify.NewHandler(log, d, d)
	}

	var email notify.Sender
	switch cfg.MailTransport {
	case config.TransportSendGrid:
		email = notify.NewSendGridSender(log, cfg.MailFrom)
	default:
		email = notify.NewCommandSender(cfg.MailCmd, cfg.MailFrom)
	}

	var sms notify.Sender
	if cfg.SMSFrom != "" {
		sms = notify.NewSMSSender(log, cfg.SMSFrom)
	}
	return notify.NewHandler(log, email, sms)
}

// newNotifier wires configuration, checker, senders, history and progress into a
// batch.Notifier writing to the command's stdout.
func newNotifier(cmd *cobra.Command, cfg *config.Configuration, opts notifierOptions) (*batch.Notifier, error) {
	log := shared.NewLogger(cmd)

	c, err := newChecker(cfg)
	if err != nil {
		return nil, err
	}

	paramsDir := cfg.ParamsDir
	if opts.paramsDir != "" {
		paramsDir = opts.paramsDir
	}

	out := cmd.OutOrStdout()
	n := batch.New(log.New("component", "batch"), c, newHandler(log, cfg, opts.dryRun, out), out, batch.Options{
		ParamsDir:       paramsDir,
		CampsiteSubject: cfg.CampsiteSubject,
		ToursSubject:    cfg.ToursSubject,
	})

	if !opts.dryRun && cfg.StateDir != "" {
		n.WithHistory(history.NewWriter(log.New("component", "history"), cfg.StateDir, cfg.MaxHistory))
	}
	if cfg.ShowProgress {
		caps := progress.TerminalCapabilities{}
		if f, ok := cmd.ErrOrStderr().(*os.File); ok {
			caps = progress.DetectTerminalCapabilities(f)
		}
		n.WithProgress(progress.NewProgressDisplay(caps, cmd.ErrOrStderr()))
	}
	return n, nil
}
