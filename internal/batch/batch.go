// Package batch runs the availability checker once per parameter file and notifies the
// recipients of every set that has availability.
//
// Files are processed sequentially in lexical order. A file that fails to load or whose
// checker cannot be run is logged and recorded, and the run continues with the next
// file. When a checker finds nothing, a "NO RESULTS FOUND - <date>" line is written to
// the output so cron mail and log files show the run happened.
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/recnotify/internal/checker"
	"github.com/ariel-frischer/recnotify/internal/history"
	"github.com/ariel-frischer/recnotify/internal/notify"
	"github.com/ariel-frischer/recnotify/internal/params"
	"github.com/ariel-frischer/recnotify/internal/progress"
	"github.com/inconshreveable/log15"
)

// NoResultsPrefix starts the line printed for a set with no availability.
const NoResultsPrefix = "NO RESULTS FOUND - "

// Default notification subjects per parameter set kind.
const (
	DefaultCampsiteSubject = "Campsite"
	DefaultToursSubject    = "TOURS AVAILABLE"
)

// Status is the outcome of one parameter set.
type Status string

const (
	StatusFound    Status = history.StatusFound
	StatusNotFound Status = history.StatusNotFound
	StatusFailed   Status = history.StatusFailed
	StatusInvalid  Status = history.StatusInvalid
)

// Outcome describes what happened to one parameter file.
type Outcome struct {
	// Name is the parameter file name.
	Name string
	// Set is the loaded parameter set; nil when the file was invalid.
	Set *params.Set
	// Status is the outcome.
	Status Status
	// Result is the checker result; nil when the checker did not complete.
	Result *checker.Result
	// Delivery counts notifications for found sets.
	Delivery notify.Delivery
	// Err is the load or checker error for invalid and failed sets.
	Err error
}

// Summary counts the outcomes of a run.
type Summary struct {
	Processed int
	Found     int
	NotFound  int
	Failed    int
	Invalid   int
	Delivered int

	// Deliveries totals the notification counts of every found set.
	Deliveries notify.Delivery

	Outcomes []Outcome
}

// HasErrors reports whether any set failed or was invalid.
func (s *Summary) HasErrors() bool {
	return s.Failed > 0 || s.Invalid > 0
}

func (s *Summary) add(o Outcome) {
	s.Processed++
	switch o.Status {
	case StatusFound:
		s.Found++
	case StatusNotFound:
		s.NotFound++
	case StatusFailed:
		s.Failed++
	case StatusInvalid:
		s.Invalid++
	}
	s.Deliveries.Add(o.Delivery)
	s.Delivered = s.Deliveries.Sent
	s.Outcomes = append(s.Outcomes, o)
}

// Options configures a Notifier.
type Options struct {
	// ParamsDir is the directory of parameter files.
	ParamsDir string
	// CampsiteSubject is the subject for campsite sets without SUBJECT.
	CampsiteSubject string
	// ToursSubject is the subject for tour sets without SUBJECT.
	ToursSubject string
}

// Notifier is the batch loop.
type Notifier struct {
	log      log15.Logger
	runner   checker.Runner
	handler  *notify.Handler
	out      io.Writer
	opts     Options
	history  *history.Writer
	progress *progress.ProgressDisplay
	now      func() time.Time
}

// New creates a Notifier. Messages for sets without availability are written to out.
func New(log log15.Logger, runner checker.Runner, handler *notify.Handler, out io.Writer, opts Options) *Notifier {
	if opts.CampsiteSubject == "" {
		opts.CampsiteSubject = DefaultCampsiteSubject
	}
	if opts.ToursSubject == "" {
		opts.ToursSubject = DefaultToursSubject
	}
	return &Notifier{
		log:     log,
		runner:  runner,
		handler: handler,
		out:     out,
		opts:    opts,
		now:     time.Now,
	}
}

// WithHistory records every outcome to w.
func (n *Notifier) WithHistory(w *history.Writer) *Notifier {
	n.history = w
	return n
}

// WithProgress shows per-set progress on p.
func (n *Notifier) WithProgress(p *progress.ProgressDisplay) *Notifier {
	n.progress = p
	return n
}

// WithClock replaces time.Now for the "no results" timestamp and history entries.
func (n *Notifier) WithClock(now func() time.Time) *Notifier {
	n.now = now
	return n
}

// Subject returns the notification subject for set.
func (n *Notifier) Subject(set *params.Set) string {
	if set.Subject != "" {
		return set.Subject
	}
	if set.Kind == params.KindTour {
		return n.opts.ToursSubject
	}
	return n.opts.CampsiteSubject
}

// Run processes every parameter file in the parameter directory. It returns an error
// only when the directory cannot be listed or ctx is done; per-file problems are
// reported in the Summary.
func (n *Notifier) Run(ctx context.Context) (*Summary, error) {
	paths, err := params.List(n.opts.ParamsDir)
	if err != nil {
		return nil, err
	}

	n.log.Info("Starting batch", "params_dir", n.opts.ParamsDir, "files", len(paths))

	summary := &Summary{}
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			n.log.Warn("Batch interrupted", "remaining", len(paths)-i, "err", err)
			return summary, fmt.Errorf("batch interrupted: %w", err)
		}
		summary.add(n.ProcessFile(ctx, path, i+1, len(paths)))
	}

	n.log.Info("Batch complete",
		"processed", summary.Processed,
		"found", summary.Found,
		"not_found", summary.NotFound,
		"failed", summary.Failed,
		"invalid", summary.Invalid,
		"delivered", summary.Delivered,
		"delivery_failures", summary.Deliveries.Failed)
	return summary, nil
}

// ProcessFile loads, checks and notifies for a single parameter file. number and total
// position the file within the run for progress display.
func (n *Notifier) ProcessFile(ctx context.Context, path string, number, total int) Outcome {
	set, err := params.Load(path)
	if err != nil {
		name := filepath.Base(path)
		n.log.Error("Invalid parameter file", "param_set", name, "err", err)
		o := Outcome{Name: name, Status: StatusInvalid, Err: err}
		n.startProgress(o, number, total)
		n.finish(o, number, total, "")
		return o
	}

	return n.ProcessSet(ctx, set, number, total)
}

// ProcessSet checks and notifies for an already loaded parameter set.
func (n *Notifier) ProcessSet(ctx context.Context, set *params.Set, number, total int) Outcome {
	log := n.log.New("param_set", set.Name, "kind", set.Kind)
	o := Outcome{Name: set.Name, Set: set}
	n.startProgress(o, number, total)

	result, err := n.runner.Check(ctx, set)
	if err != nil {
		log.Error("Checker failed", "err", err)
		o.Status = StatusFailed
		o.Err = err
		n.finish(o, number, total, err.Error())
		return o
	}
	o.Result = result

	log.Debug("Checker finished", "exit_code", result.ExitCode, "lines", result.Lines, "duration", result.Duration)
	if result.Stderr != "" {
		log.Debug("Checker stderr", "stderr", result.Stderr)
	}

	if !result.Found {
		o.Status = StatusNotFound
		// The spinner must not interleave with the output line.
		n.stopSpinner()
		line := NoResultsPrefix + n.now().Format(time.UnixDate)
		fmt.Fprintln(n.out, line)
		log.Info("No results found", "exit_code", result.ExitCode)
		n.finish(o, number, total, "")
		return o
	}

	o.Status = StatusFound
	subject := n.Subject(set)
	log.Info("Availability found", "subject", subject, "recipients", set.Recipients())
	o.Delivery = n.handler.Notify(ctx, set.Emails, set.Phones, subject, result.Stdout)
	n.finish(o, number, total, o.Delivery.String())
	return o
}

func (n *Notifier) startProgress(o Outcome, number, total int) {
	if n.progress == nil {
		return
	}
	_ = n.progress.StartSet(setInfo(o, number, total))
}

func (n *Notifier) stopSpinner() {
	if n.progress != nil {
		n.progress.StopSpinner()
	}
}

// finish records o to history and progress.
func (n *Notifier) finish(o Outcome, number, total int, detail string) {
	if n.progress != nil {
		_ = n.progress.FinishSet(setInfo(o, number, total), detail)
	}
	if n.history != nil {
		n.history.Record(n.historyEntry(o))
	}
}

func (n *Notifier) historyEntry(o Outcome) history.Entry {
	entry := history.Entry{
		Timestamp: n.now(),
		ParamSet:  o.Name,
		Status:    string(o.Status),
		Delivered: o.Delivery.Sent,
	}
	if o.Set != nil {
		entry.Kind = string(o.Set.Kind)
	}
	if o.Result != nil {
		entry.ExitCode = o.Result.ExitCode
		entry.Duration = o.Result.Duration.Round(time.Millisecond).String()
	}
	if o.Err != nil {
		entry.Error = o.Err.Error()
	}
	return entry
}

func setInfo(o Outcome, number, total int) progress.SetInfo {
	info := progress.SetInfo{Name: o.Name, Number: number, Total: total}
	if o.Set != nil {
		info.Kind = string(o.Set.Kind)
	}
	switch o.Status {
	case StatusFound:
		info.Status = progress.SetFound
	case StatusNotFound:
		info.Status = progress.SetNotFound
	case StatusFailed:
		info.Status = progress.SetFailed
	case StatusInvalid:
		info.Status = progress.SetInvalid
	default:
		info.Status = progress.SetChecking
	}
	return info
}
