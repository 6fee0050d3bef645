// Package notify_test provides mock senders and a recording logger for notification tests.
// Related: internal/notify/sender.go
// Tags: notify, mocks, testing

package notify

import (
	"context"
	"sync"

	"github.com/inconshreveable/log15"
)

// MockSender records every message and fails for recipients listed in FailFor.
type MockSender struct {
	mu sync.Mutex

	name    string
	FailFor map[string]error
	Sent    []Message
}

func NewMockSender(name string) *MockSender {
	return &MockSender{name: name, FailFor: map[string]error{}}
}

// WithFailure configures the mock to return err when sending to to.
func (m *MockSender) WithFailure(to string, err error) *MockSender {
	m.FailFor[to] = err
	return m
}

func (m *MockSender) Name() string { return m.name }

func (m *MockSender) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailFor[msg.To]; ok {
		return err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *MockSender) Recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.Sent))
	for i, msg := range m.Sent {
		out[i] = msg.To
	}
	return out
}

// logRecorder collects log15 records.
type logRecorder struct {
	mu      sync.Mutex
	records []*log15.Record
}

func newTestLogger() (log15.Logger, *logRecorder) {
	rec := &logRecorder{}
	log := log15.New()
	log.SetHandler(log15.FuncHandler(func(r *log15.Record) error {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.records = append(rec.records, r)
		return nil
	}))
	return log, rec
}

// messages returns the messages logged at lvl.
func (r *logRecorder) messages(lvl log15.Lvl) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, rec := range r.records {
		if rec.Lvl == lvl {
			out = append(out, rec.Msg)
		}
	}
	return out
}
