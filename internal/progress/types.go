// Package progress shows which parameter set a batch run is checking.
// It tracks per-set status and renders a spinner on terminals or plain lines otherwise.
package progress

import "errors"

// SetStatus represents the state of one parameter set in a batch run
type SetStatus int

const (
	// SetPending indicates the set has not been checked yet
	SetPending SetStatus = iota
	// SetChecking indicates the checker is running
	SetChecking
	// SetFound indicates availability was found
	SetFound
	// SetNotFound indicates the checker found nothing
	SetNotFound
	// SetFailed indicates the checker could not be run
	SetFailed
	// SetInvalid indicates the parameter file was rejected
	SetInvalid
)

// String returns the string representation of SetStatus
func (s SetStatus) String() string {
	switch s {
	case SetPending:
		return "pending"
	case SetChecking:
		return "checking"
	case SetFound:
		return "found"
	case SetNotFound:
		return "not_found"
	case SetFailed:
		return "failed"
	case SetInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// SetInfo describes a parameter set for progress display
type SetInfo struct {
	// Name is the parameter file name (e.g., "yosemite.env")
	Name string
	// Kind is "campsite" or "tour"; empty before the file is loaded
	Kind string
	// Number is the position of the set in the run (1-based index)
	Number int
	// Total is the number of parameter files in the run
	Total int
	// Status is the current state
	Status SetStatus
}

// Validate checks that all SetInfo fields meet validation requirements
func (s SetInfo) Validate() error {
	if s.Name == "" {
		return errors.New("set name cannot be empty")
	}
	if s.Number <= 0 {
		return errors.New("set number must be > 0")
	}
	if s.Total <= 0 {
		return errors.New("total sets must be > 0")
	}
	if s.Number > s.Total {
		return errors.New("set number cannot exceed total sets")
	}
	return nil
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether the output is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark marks found availability ("✓" or "[FOUND]")
	Checkmark string
	// Empty marks a set with nothing available ("·" or "[NONE]")
	Empty string
	// Failure marks failed or invalid sets ("✗" or "[FAIL]")
	Failure string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
