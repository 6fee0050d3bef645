package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/inconshreveable/log15"
)

// Writer appends entries to the history file and prunes it to MaxEntries.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain. Zero keeps everything.
	MaxEntries int

	log log15.Logger
	mu  sync.Mutex
}

// NewWriter creates a new history writer.
func NewWriter(log log15.Logger, stateDir string, maxEntries int) *Writer {
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
		log:        log,
	}
}

// Record appends entry, filling in ID and Timestamp when empty.
// Errors are non-fatal: they are logged as warnings and never fail a run.
func (w *Writer) Record(entry Entry) {
	if err := w.Append(entry); err != nil {
		w.log.Warn("Failed to record history", "param_set", entry.ParamSet, "err", err)
	}
}

// Append adds entry to the history file, pruning the oldest entries over the limit.
func (w *Writer) Append(entry Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.ID == "" {
		id, err := GenerateID(entry.Timestamp)
		if err != nil {
			return fmt.Errorf("generating history ID: %w", err)
		}
		entry.ID = id
	}

	history, err := LoadHistory(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	// Prune oldest entries if over limit
	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := SaveHistory(w.StateDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}
