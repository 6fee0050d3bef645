package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressDisplay renders per-set progress to a writer
type ProgressDisplay struct {
	capabilities TerminalCapabilities
	current      *SetInfo
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
	out          io.Writer
}

// NewProgressDisplay creates a new progress display writing to out
func NewProgressDisplay(caps TerminalCapabilities, out io.Writer) *ProgressDisplay {
	return &ProgressDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// StartSet begins displaying progress for a parameter set
func (p *ProgressDisplay) StartSet(set SetInfo) error {
	if err := set.Validate(); err != nil {
		return err
	}

	set.Status = SetChecking
	p.current = &set
	msg := buildCheckingMessage(set)

	if p.capabilities.IsTTY {
		// The spinner checks its file, not its writer, for a terminal.
		writer := spinner.WithWriter(p.out)
		if f, ok := p.out.(*os.File); ok {
			writer = spinner.WithWriterFile(f)
		}
		p.spinner = spinner.New(
			spinner.CharSets[p.symbols.SpinnerSet],
			100*time.Millisecond,
			writer,
		)
		p.spinner.Suffix = " " + msg
		p.spinner.Start()
	} else {
		fmt.Fprintln(p.out, msg)
	}

	return nil
}

// FinishSet stops the spinner and prints the outcome of set
func (p *ProgressDisplay) FinishSet(set SetInfo, detail string) error {
	if err := set.Validate(); err != nil {
		return err
	}

	p.StopSpinner()

	mark := statusMark(set.Status, p.symbols, p.capabilities.SupportsColor)
	fmt.Fprintf(p.out, "%s %s\n", mark, buildOutcomeMessage(set, detail))

	p.current = nil
	return nil
}

// Current returns the set being checked, or nil
func (p *ProgressDisplay) Current() *SetInfo {
	return p.current
}

// StopSpinner stops the spinner without printing an outcome
func (p *ProgressDisplay) StopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}
