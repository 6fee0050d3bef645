// Package progress_test tests per-set progress rendering, counters, and outcome marks.
// Related: internal/progress/display.go, internal/progress/formatter.go
// Tags: progress, display, rendering, spinner, tty
package progress_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ariel-frischer/recnotify/internal/progress"
)

var plainCaps = progress.TerminalCapabilities{
	IsTTY:           false,
	SupportsUnicode: false,
	SupportsColor:   false,
}

// TestProgressDisplay_StartSet tests the checking line for non-TTY output
func TestProgressDisplay_StartSet(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		set          progress.SetInfo
		wantContains []string
		wantErr      bool
	}{
		"campsite set": {
			set:          progress.SetInfo{Name: "yosemite.env", Kind: "campsite", Number: 1, Total: 3},
			wantContains: []string{"[1/3]", "Checking yosemite.env", "(campsite)"},
		},
		"unknown kind omits suffix": {
			set:          progress.SetInfo{Name: "broken.env", Number: 2, Total: 2},
			wantContains: []string{"[2/2]", "Checking broken.env"},
		},
		"invalid set - empty name": {
			set:     progress.SetInfo{Number: 1, Total: 3},
			wantErr: true,
		},
		"invalid set - number exceeds total": {
			set:     progress.SetInfo{Name: "a.env", Number: 4, Total: 3},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplay(plainCaps, &buf)

			err := display.StartSet(tt.set)
			if tt.wantErr {
				if err == nil {
					t.Errorf("StartSet() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("StartSet() unexpected error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("StartSet() output = %q, want to contain %q", buf.String(), want)
				}
			}
			if cur := display.Current(); cur == nil || cur.Status != progress.SetChecking {
				t.Errorf("Current() = %+v, want set in checking state", cur)
			}
		})
	}
}

// TestProgressDisplay_FinishSet tests outcome marks and messages
func TestProgressDisplay_FinishSet(t *testing.T) {
	t.Parallel()

	unicode := progress.TerminalCapabilities{SupportsUnicode: true}

	tests := map[string]struct {
		capabilities progress.TerminalCapabilities
		status       progress.SetStatus
		detail       string
		wantContains []string
	}{
		"found with unicode": {
			capabilities: unicode,
			status:       progress.SetFound,
			detail:       "2 notifications sent",
			wantContains: []string{"✓", "[1/2] yosemite.env: availability found", "(2 notifications sent)"},
		},
		"not found ascii": {
			capabilities: plainCaps,
			status:       progress.SetNotFound,
			wantContains: []string{"[NONE]", "no results"},
		},
		"failed ascii": {
			capabilities: plainCaps,
			status:       progress.SetFailed,
			detail:       "timeout",
			wantContains: []string{"[FAIL]", "checker failed", "(timeout)"},
		},
		"invalid with color": {
			capabilities: progress.TerminalCapabilities{SupportsUnicode: true, SupportsColor: true},
			status:       progress.SetInvalid,
			wantContains: []string{"\033[31m✗\033[0m", "invalid parameters"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplay(tt.capabilities, &buf)
			set := progress.SetInfo{Name: "yosemite.env", Number: 1, Total: 2, Status: tt.status}

			if err := display.FinishSet(set, tt.detail); err != nil {
				t.Fatalf("FinishSet() unexpected error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("FinishSet() output = %q, want to contain %q", buf.String(), want)
				}
			}
			if display.Current() != nil {
				t.Errorf("Current() after FinishSet = %+v, want nil", display.Current())
			}
		})
	}
}

// TestProgressDisplay_TTYSpinner tests the spinner lifecycle does not write outcome lines early
func TestProgressDisplay_TTYSpinner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	display := progress.NewProgressDisplay(progress.TerminalCapabilities{IsTTY: true, SupportsUnicode: true}, &buf)
	set := progress.SetInfo{Name: "carlsbad.env", Kind: "tour", Number: 1, Total: 1}

	if err := display.StartSet(set); err != nil {
		t.Fatalf("StartSet() unexpected error = %v", err)
	}
	display.StopSpinner()
	display.StopSpinner()

	set.Status = progress.SetFound
	if err := display.FinishSet(set, ""); err != nil {
		t.Fatalf("FinishSet() unexpected error = %v", err)
	}
	if !strings.Contains(buf.String(), "carlsbad.env: availability found") {
		t.Errorf("output = %q, want outcome line", buf.String())
	}
}

// TestSetInfo_Validate tests all validation rules for SetInfo
func TestSetInfo_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		set    progress.SetInfo
		errMsg string
	}{
		"valid":          {set: progress.SetInfo{Name: "a.env", Number: 1, Total: 1}},
		"empty name":     {set: progress.SetInfo{Number: 1, Total: 1}, errMsg: "set name cannot be empty"},
		"zero number":    {set: progress.SetInfo{Name: "a.env", Total: 1}, errMsg: "set number must be > 0"},
		"zero total":     {set: progress.SetInfo{Name: "a.env", Number: 1}, errMsg: "total sets must be > 0"},
		"number > total": {set: progress.SetInfo{Name: "a.env", Number: 2, Total: 1}, errMsg: "set number cannot exceed total sets"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tt.set.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.errMsg {
				t.Errorf("Validate() error = %v, want %q", err, tt.errMsg)
			}
		})
	}
}

// TestSetStatus_String tests the String() method of SetStatus
func TestSetStatus_String(t *testing.T) {
	t.Parallel()

	tests := map[progress.SetStatus]string{
		progress.SetPending:    "pending",
		progress.SetChecking:   "checking",
		progress.SetFound:      "found",
		progress.SetNotFound:   "not_found",
		progress.SetFailed:     "failed",
		progress.SetInvalid:    "invalid",
		progress.SetStatus(99): "unknown",
	}

	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("SetStatus(%d).String() = %q, want %q", int(status), got, want)
		}
	}
}
