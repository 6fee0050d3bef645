package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// Sender delivers a Message.
type Sender interface {
	// Send delivers msg, returning an error if it was not accepted.
	Send(ctx context.Context, msg Message) error

	// Name identifies the sender in logs and health checks.
	Name() string
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// CommandSender hands each email to a local mail command:
//
//	<cmd> -s <subject> [-r <from>] <recipient>
//
// with the body on stdin.
type CommandSender struct {
	// Cmd is the mail executable (e.g., "mail" or "/usr/bin/mailx").
	Cmd string

	// From sets the envelope sender with -r when non-empty.
	From string
}

// NewCommandSender creates a CommandSender.
func NewCommandSender(cmd, from string) *CommandSender {
	return &CommandSender{Cmd: cmd, From: from}
}

// Name returns the mail command.
func (s *CommandSender) Name() string {
	return s.Cmd
}

// Available returns true if the mail command is in PATH.
func (s *CommandSender) Available() bool {
	return toolAvailable(s.Cmd)
}

// Args returns the mail command arguments for msg.
func (s *CommandSender) Args(msg Message) []string {
	args := []string{"-s", msg.Subject}
	if s.From != "" {
		args = append(args, "-r", s.From)
	}
	return append(args, msg.To)
}

// Send runs the mail command for msg.
func (s *CommandSender) Send(ctx context.Context, msg Message) error {
	cmd := exec.CommandContext(ctx, s.Cmd, s.Args(msg)...)
	cmd.Stdin = strings.NewReader(msg.Body)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return fmt.Errorf("running %s for %s: %w: %s", s.Cmd, msg.To, err, detail)
		}
		return fmt.Errorf("running %s for %s: %w", s.Cmd, msg.To, err)
	}
	return nil
}

// DryRunSender writes messages to w instead of delivering them.
type DryRunSender struct {
	mu sync.Mutex
	w  io.Writer
	n  int
}

// NewDryRunSender creates a DryRunSender writing to w.
func NewDryRunSender(w io.Writer) *DryRunSender {
	return &DryRunSender{w: w}
}

// Name returns "dry-run".
func (s *DryRunSender) Name() string {
	return "dry-run"
}

// Count returns the number of messages written so far.
func (s *DryRunSender) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Send prints msg.
func (s *DryRunSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.n++
	body := strings.TrimRight(msg.Body, "\n")
	_, err := fmt.Fprintf(s.w, "--- [dry-run] %s %d to %s ---\nSubject: %s\n\n%s\n\n",
		msg.Channel, s.n, msg.To, msg.Subject, body)
	return err
}
