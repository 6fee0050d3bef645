package params

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ValidationError describes why a parameter file was rejected.
type ValidationError struct {
	FilePath string
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// List returns the parameter files in dir in lexical order.
// Subdirectories and dotfiles (editor swap files, .gitkeep) are skipped.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading parameter directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// DirReport is the outcome of validating every file in a directory.
type DirReport struct {
	Valid  []*Set
	Errors []error
}

// ValidateDir loads every parameter file in dir. A broken file is recorded in
// Errors and does not stop the remaining files from loading.
func ValidateDir(dir string) (*DirReport, error) {
	files, err := List(dir)
	if err != nil {
		return nil, err
	}

	report := &DirReport{}
	for _, f := range files {
		set, err := Load(f)
		if err != nil {
			report.Errors = append(report.Errors, err)
			continue
		}
		report.Valid = append(report.Valid, set)
	}
	return report, nil
}
