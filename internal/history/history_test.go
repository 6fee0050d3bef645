// Package history_test tests history loading, saving, filtering and corruption recovery.
// Related: internal/history/history.go, internal/history/writer.go
// Tags: history, yaml, filtering, pruning

package history

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() log15.Logger {
	log := log15.New()
	log.SetHandler(log15.DiscardHandler())
	return log
}

func TestLoadHistory(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content     string
		wantEntries int
		wantBackup  bool
	}{
		"missing file": {
			wantEntries: 0,
		},
		"existing entries": {
			content: `entries:
  - id: misty_canyon_20210610_070000
    timestamp: 2021-06-10T07:00:00Z
    param_set: yosemite.env
    kind: campsite
    status: found
    exit_code: 0
    duration: 2.1s
    delivered: 1
  - id: quiet_cave_20210610_070003
    timestamp: 2021-06-10T07:00:03Z
    param_set: carlsbad.env
    kind: tour
    status: not_found
    exit_code: 1
    duration: 900ms
    delivered: 0
`,
			wantEntries: 2,
		},
		"corrupted file is backed up": {
			content:     "not valid yaml: [[[",
			wantEntries: 0,
			wantBackup:  true,
		},
		"empty file": {
			content:     "",
			wantEntries: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stateDir := t.TempDir()
			if tt.content != "" || name == "empty file" {
				require.NoError(t, os.WriteFile(filepath.Join(stateDir, HistoryFileName), []byte(tt.content), 0644))
			}

			h, err := LoadHistory(stateDir)
			require.NoError(t, err)
			assert.Len(t, h.Entries, tt.wantEntries)
			assert.NotNil(t, h.Entries)

			_, statErr := os.Stat(filepath.Join(stateDir, HistoryFileName+BackupSuffix))
			assert.Equal(t, tt.wantBackup, statErr == nil)
		})
	}
}

func TestSaveHistory_RoundTrip(t *testing.T) {
	t.Parallel()

	stateDir := filepath.Join(t.TempDir(), "nested", "state")
	entry := Entry{
		ID:        "misty_canyon_20210610_070000",
		Timestamp: time.Date(2021, 6, 10, 7, 0, 0, 0, time.UTC),
		ParamSet:  "yosemite.env",
		Kind:      "campsite",
		Status:    StatusFound,
		Duration:  "2.1s",
		Delivered: 1,
	}

	require.NoError(t, SaveHistory(stateDir, &HistoryFile{Entries: []Entry{entry}}))

	h, err := LoadHistory(stateDir)
	require.NoError(t, err)
	require.Len(t, h.Entries, 1)
	assert.Equal(t, entry, h.Entries[0])

	_, err = os.Stat(filepath.Join(stateDir, HistoryFileName+".tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestClearHistory(t *testing.T) {
	t.Parallel()

	stateDir := t.TempDir()
	require.NoError(t, SaveHistory(stateDir, &HistoryFile{Entries: []Entry{{ID: "a"}, {ID: "b"}}}))
	require.NoError(t, ClearHistory(stateDir))

	h, err := LoadHistory(stateDir)
	require.NoError(t, err)
	assert.Empty(t, h.Entries)
}

func TestHistoryFile_Filter(t *testing.T) {
	t.Parallel()

	h := &HistoryFile{Entries: []Entry{
		{ID: "1", Status: StatusFound},
		{ID: "2", Status: StatusNotFound},
		{ID: "3", Status: StatusFailed},
		{ID: "4", Status: StatusNotFound},
		{ID: "5", Status: StatusFound},
	}}

	tests := map[string]struct {
		status  string
		limit   int
		wantIDs []string
	}{
		"all newest first": {wantIDs: []string{"5", "4", "3", "2", "1"}},
		"limit":            {limit: 2, wantIDs: []string{"5", "4"}},
		"by status":        {status: StatusNotFound, wantIDs: []string{"4", "2"}},
		"status and limit": {status: StatusFound, limit: 1, wantIDs: []string{"5"}},
		"no matches":       {status: StatusInvalid, wantIDs: nil},
		"negative is all":  {limit: -1, wantIDs: []string{"5", "4", "3", "2", "1"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var ids []string
			for _, e := range h.Filter(tt.status, tt.limit) {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestValidStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{StatusFound, StatusNotFound, StatusFailed, StatusInvalid} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("running"))
	assert.False(t, ValidStatus(""))
}

func TestWriter_Append(t *testing.T) {
	t.Parallel()

	stateDir := t.TempDir()
	w := NewWriter(discardLogger(), stateDir, 500)

	require.NoError(t, w.Append(Entry{ParamSet: "yosemite.env", Status: StatusFound, Delivered: 1}))

	h, err := LoadHistory(stateDir)
	require.NoError(t, err)
	require.Len(t, h.Entries, 1)
	assert.NotEmpty(t, h.Entries[0].ID)
	assert.False(t, h.Entries[0].Timestamp.IsZero())
	assert.Equal(t, "yosemite.env", h.Entries[0].ParamSet)
}

func TestWriter_Pruning(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		existing    int
		maxEntries  int
		wantEntries int
		wantFirstID string
	}{
		"no pruning needed": {
			existing:    5,
			maxEntries:  10,
			wantEntries: 6,
			wantFirstID: "0",
		},
		"prune oldest when max exceeded": {
			existing:    10,
			maxEntries:  10,
			wantEntries: 10,
			wantFirstID: "1",
		},
		"zero keeps everything": {
			existing:    10,
			maxEntries:  0,
			wantEntries: 11,
			wantFirstID: "0",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stateDir := t.TempDir()
			h := &HistoryFile{}
			for i := 0; i < tt.existing; i++ {
				h.Entries = append(h.Entries, Entry{ID: string(rune('0' + i)), Status: StatusNotFound})
			}
			require.NoError(t, SaveHistory(stateDir, h))

			w := NewWriter(discardLogger(), stateDir, tt.maxEntries)
			require.NoError(t, w.Append(Entry{ID: "new", Status: StatusFound}))

			got, err := LoadHistory(stateDir)
			require.NoError(t, err)
			assert.Len(t, got.Entries, tt.wantEntries)
			assert.Equal(t, tt.wantFirstID, got.Entries[0].ID)
			assert.Equal(t, "new", got.Entries[len(got.Entries)-1].ID)
		})
	}
}

func TestWriter_ConcurrentRecord(t *testing.T) {
	t.Parallel()

	stateDir := t.TempDir()
	w := NewWriter(discardLogger(), stateDir, 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Record(Entry{ParamSet: "p.env", Status: StatusNotFound})
		}()
	}
	wg.Wait()

	h, err := LoadHistory(stateDir)
	require.NoError(t, err)
	assert.Len(t, h.Entries, 10)
}

func TestWriter_RecordFailureIsWarning(t *testing.T) {
	t.Parallel()

	// A regular file where the state directory should be.
	blocker := filepath.Join(t.TempDir(), "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	var warned []string
	log := log15.New()
	log.SetHandler(log15.FuncHandler(func(r *log15.Record) error {
		if r.Lvl == log15.LvlWarn {
			warned = append(warned, r.Msg)
		}
		return nil
	}))

	w := NewWriter(log, filepath.Join(blocker, "sub"), 10)
	assert.Error(t, w.Append(Entry{ParamSet: "p.env"}))

	w.Record(Entry{ParamSet: "p.env"})
	assert.Equal(t, []string{"Failed to record history"}, warned)
}
