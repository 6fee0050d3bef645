package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeChecker is a shell script standing in for camping.py/tours.py.
type FakeChecker struct {
	// Path is the executable script.
	Path string

	argsPath string
}

// NewFakeChecker writes an executable script into dir that prints stdout, exits with
// exitCode, and records the arguments it was called with.
func NewFakeChecker(t *testing.T, dir, name, stdout string, exitCode int) *FakeChecker {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake checkers are POSIX shell scripts")
	}

	path := filepath.Join(dir, name)
	outPath := path + ".out"
	argsPath := path + ".args"

	WriteFile(t, outPath, stdout)
	script := fmt.Sprintf(`#!/bin/sh
printf '%%s\n' "$@" > %q
cat %q
exit %d
`, argsPath, outPath, exitCode)

	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake checker %s: %v", path, err)
	}

	return &FakeChecker{Path: path, argsPath: argsPath}
}

// WriteScript writes an arbitrary executable shell script into dir.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("scripts are POSIX shell")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("failed to write script %s: %v", path, err)
	}
	return path
}

// Called reports whether the fake checker has run.
func (f *FakeChecker) Called() bool {
	return FileExists(f.argsPath)
}

// Args returns the arguments of the most recent invocation.
func (f *FakeChecker) Args(t *testing.T) []string {
	t.Helper()

	content := strings.TrimSuffix(ReadFile(t, f.argsPath), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
