// Package history records the outcome of every parameter set a batch run processes.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// HistoryFileName is the name of the history file.
	HistoryFileName = "history.yaml"
	// BackupSuffix is the suffix for backup files when corruption is detected.
	BackupSuffix = ".backup"
)

// Status constants for history entries.
const (
	// StatusFound means the checker reported availability.
	StatusFound = "found"
	// StatusNotFound means the checker ran and reported nothing.
	StatusNotFound = "not_found"
	// StatusFailed means the checker could not be run to completion.
	StatusFailed = "failed"
	// StatusInvalid means the parameter file was rejected before running the checker.
	StatusInvalid = "invalid"
)

// ValidStatus reports whether s is one of the entry statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusFound, StatusNotFound, StatusFailed, StatusInvalid:
		return true
	default:
		return false
	}
}

// Entry is the record of one parameter set in one batch run.
type Entry struct {
	// ID is a unique identifier in adjective_noun_YYYYMMDD_HHMMSS format.
	ID string `yaml:"id"`
	// Timestamp is when the parameter set was processed.
	Timestamp time.Time `yaml:"timestamp"`
	// ParamSet is the parameter file name (e.g., "yosemite.env").
	ParamSet string `yaml:"param_set"`
	// Kind is "campsite" or "tour"; empty for invalid files whose kind is unknown.
	Kind string `yaml:"kind,omitempty"`
	// Status is one of found, not_found, failed, invalid.
	Status string `yaml:"status"`
	// ExitCode is the checker exit status (meaningless for failed and invalid).
	ExitCode int `yaml:"exit_code"`
	// Duration is the checker run time in Go duration format (e.g., "2.315s").
	Duration string `yaml:"duration,omitempty"`
	// Delivered is the number of notifications accepted by a sender.
	Delivered int `yaml:"delivered"`
	// Error describes why the set failed or was invalid.
	Error string `yaml:"error,omitempty"`
}

// HistoryFile represents the YAML file containing all history entries.
type HistoryFile struct {
	// Entries is an ordered list of records (newest entries appended at end).
	Entries []Entry `yaml:"entries"`
}

// LoadHistory loads the history file from the given state directory.
// Returns empty history if file doesn't exist.
// Handles corrupted files by backing them up and creating a fresh history.
func LoadHistory(stateDir string) (*HistoryFile, error) {
	historyPath := filepath.Join(stateDir, HistoryFileName)

	data, err := os.ReadFile(historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &HistoryFile{Entries: []Entry{}}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		if backupErr := backupCorruptedFile(historyPath); backupErr != nil {
			return nil, fmt.Errorf("backing up corrupted history file: %w", backupErr)
		}
		return &HistoryFile{Entries: []Entry{}}, nil
	}

	if history.Entries == nil {
		history.Entries = []Entry{}
	}

	return &history, nil
}

// backupCorruptedFile renames a corrupted file with a .backup suffix.
func backupCorruptedFile(path string) error {
	if err := os.Rename(path, path+BackupSuffix); err != nil {
		return fmt.Errorf("renaming corrupted file to backup: %w", err)
	}
	return nil
}

// SaveHistory writes the history file atomically (temp file then rename), creating
// stateDir if needed.
func SaveHistory(stateDir string, history *HistoryFile) error {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	historyPath := filepath.Join(stateDir, HistoryFileName)
	tmpPath := historyPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing temp history file: %w", err)
	}

	if err := os.Rename(tmpPath, historyPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp history file: %w", err)
	}

	return nil
}

// ClearHistory removes all entries from the history file.
func ClearHistory(stateDir string) error {
	return SaveHistory(stateDir, &HistoryFile{Entries: []Entry{}})
}

// Filter returns entries matching status (all when empty), newest first, limited to
// limit entries (all when limit <= 0).
func (h *HistoryFile) Filter(status string, limit int) []Entry {
	var out []Entry
	for i := len(h.Entries) - 1; i >= 0; i-- {
		e := h.Entries[i]
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
