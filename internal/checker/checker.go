// Package checker runs the external availability checkers.
//
// A checker is an opaque program (for example camping.py or tours.py) that queries a
// reservation system and prints human-readable availability to stdout. The package
// builds its command line from a parameter set, runs it, and turns the outcome into an
// explicit Result whose Found flag is derived by a single signal Policy.
package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ariel-frischer/recnotify/internal/params"
)

const waitDelay = 2 * time.Second

// Policy decides whether a finished checker run found availability.
type Policy string

const (
	// PolicyExitCode treats exit status 0 as availability. Output is ignored.
	PolicyExitCode Policy = "exit_code"
	// PolicyLineCount treats any non-blank stdout line as availability. The exit
	// status is ignored.
	PolicyLineCount Policy = "line_count"
)

// ParsePolicy converts a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyExitCode, PolicyLineCount:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown signal policy %q (must be exit_code or line_count)", s)
	}
}

// Found applies the policy to a result.
func (p Policy) Found(r *Result) bool {
	switch p {
	case PolicyLineCount:
		return r.Lines > 0
	default:
		return r.ExitCode == 0
	}
}

// Command is one checker executable plus its leading arguments.
type Command struct {
	// Name identifies the checker in logs and health checks (e.g., "campsite").
	Name string

	// Cmd is the executable (e.g., "python3" or "/opt/checkers/tours.py").
	Cmd string

	// Args are placed before the parameter flags (e.g., the script path).
	Args []string
}

// Validate checks that the executable is in PATH.
func (c Command) Validate() error {
	if _, err := exec.LookPath(c.Cmd); err != nil {
		return fmt.Errorf("%s: checker %q not found in PATH (install it or check your PATH)", c.Name, c.Cmd)
	}
	return nil
}

// Result contains the outcome of one checker run.
type Result struct {
	// ExitCode is the process exit status.
	ExitCode int

	// Stdout is the availability text; it becomes the notification body.
	Stdout string

	// Stderr is captured separately and never sent to recipients.
	Stderr string

	// Lines is the number of non-blank lines in Stdout.
	Lines int

	// Found is the availability signal derived by the checker's Policy.
	Found bool

	// Duration is the execution time from command start to completion.
	Duration time.Duration
}

// Runner runs a check for one parameter set.
type Runner interface {
	Check(ctx context.Context, set *params.Set) (*Result, error)
}

// Checker runs the campsite or tour checker depending on the parameter set kind.
type Checker struct {
	Campsite Command
	Tours    Command

	// Policy derives Result.Found.
	Policy Policy

	// Timeout is the maximum execution duration. Zero means no timeout.
	Timeout time.Duration

	// Debug appends --debug to every invocation.
	Debug bool

	// Env contains additional environment variables for the checker process.
	Env map[string]string
}

// New creates a Checker with the exit-code policy.
func New(campsite, tours Command) *Checker {
	return &Checker{
		Campsite: campsite,
		Tours:    tours,
		Policy:   PolicyExitCode,
	}
}

// CommandFor returns the checker command for a parameter set kind.
func (c *Checker) CommandFor(kind params.Kind) (Command, error) {
	switch kind {
	case params.KindCampsite:
		return c.Campsite, nil
	case params.KindTour:
		return c.Tours, nil
	default:
		return Command{}, fmt.Errorf("no checker for parameter set kind %q", kind)
	}
}

// BuildCommand constructs the exec.Cmd for a parameter set without running it.
func (c *Checker) BuildCommand(set *params.Set) (*exec.Cmd, error) {
	command, err := c.CommandFor(set.Kind)
	if err != nil {
		return nil, err
	}

	args := append([]string{}, command.Args...)
	args = append(args, set.Args()...)
	if c.Debug {
		args = append(args, "--debug")
	}

	cmd := exec.Command(command.Cmd, args...)
	cmd.Env = c.buildEnv()
	return cmd, nil
}

// buildEnv merges the process environment with c.Env.
func (c *Checker) buildEnv() []string {
	env := os.Environ()
	for k, v := range c.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}

// Check runs the checker for set and returns its result. A non-zero exit status is
// not an error; an error means the checker could not be run to completion (missing
// executable, timeout, cancellation).
func (c *Checker) Check(ctx context.Context, set *params.Set) (*Result, error) {
	cmd, err := c.BuildCommand(set)
	if err != nil {
		return nil, fmt.Errorf("building command: %w", err)
	}

	result, err := c.runCommand(ctx, cmd, string(set.Kind))
	if err != nil {
		return nil, err
	}
	result.Found = c.Policy.Found(result)
	return result, nil
}

// runCommand executes the command and captures output.
func (c *Checker) runCommand(ctx context.Context, cmd *exec.Cmd, name string) (*Result, error) {
	ctx, cancel := c.applyTimeout(ctx)
	defer cancel()

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	// Children of a killed checker may hold the output pipes open.
	cmd.WaitDelay = waitDelay

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s checker: %w", name, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var err error
	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done // Wait for goroutine to exit
		return nil, fmt.Errorf("executing %s checker: %w", name, ctx.Err())
	case err = <-done:
	}

	result := &Result{
		Duration: time.Since(start),
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
	}
	result.Lines = CountLines(result.Stdout)

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("executing %s checker: %w", name, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	return result, nil
}

// applyTimeout returns a context with timeout if c.Timeout is set.
func (c *Checker) applyTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return ctx, func() {}
}

// CountLines returns the number of lines in s containing non-whitespace text.
func CountLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
