// Package testutil provides test utilities and helpers for recnotify tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}

// CampsiteParams returns parameter file content for a campsite search.
func CampsiteParams(park string, emails ...string) string {
	return fmt.Sprintf(`PARKS=%s
START_DATE=2021-06-10
END_DATE=2021-06-12
NIGHTS=1
EMAILS="%s"
`, park, strings.Join(emails, " "))
}

// TourParams returns parameter file content for a tour search.
func TourParams(facility, tour string, emails ...string) string {
	return fmt.Sprintf(`FACILITY=%s
TOURS=%s
START_DATE=2021-07-01
END_DATE=2021-07-03
EMAILS=(%s)
`, facility, tour, quoteAll(emails))
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, " ")
}

// WriteParamFile writes a parameter file into dir and returns its path.
func WriteParamFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	WriteFile(t, path, content)
	return path
}

// apiKeyEnvVars lists all environment variables that could enable real deliveries.
// Clearing these makes it impossible for tests to accidentally send email or SMS.
var apiKeyEnvVars = []string{
	"SENDGRID_API_KEY",
	"TWILIO_ACCOUNT_SID",
	"TWILIO_AUTH_TOKEN",
	"TWILIO_API_KEY",
	"TWILIO_API_SECRET",
}

// ClearAPIKeys clears delivery credentials for the duration of the test.
// Tests calling it cannot run in parallel.
func ClearAPIKeys(t *testing.T) {
	t.Helper()

	for _, key := range apiKeyEnvVars {
		t.Setenv(key, "")
	}
}
