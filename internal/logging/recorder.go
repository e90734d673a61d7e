package logging

import (
	"context"
	"log/slog"
	"sync"
)

// Entry is a captured log record with its attributes flattened.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Recorder is a slog.Handler that keeps every record in memory.
// It is meant for asserting on log output in tests.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	attrs   []slog.Attr
}

// NewRecorder returns a logger writing into a fresh Recorder.
func NewRecorder() (*slog.Logger, *Recorder) {
	rec := &Recorder{mu: &sync.Mutex{}, entries: &[]Entry{}}
	return slog.New(rec), rec
}

func (r *Recorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	e := Entry{Level: rec.Level, Message: rec.Message, Attrs: make(map[string]any)}
	for _, a := range r.attrs {
		e.Attrs[a.Key] = a.Value.Any()
	}
	rec.Attrs(func(a slog.Attr) bool {
		a = replaceAttr(nil, a)
		e.Attrs[a.Key] = a.Value.Any()
		return true
	})

	r.mu.Lock()
	*r.entries = append(*r.entries, e)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *r
	next.attrs = append(append([]slog.Attr{}, r.attrs...), attrs...)
	return &next
}

// WithGroup is flattened; groups are not used by this module.
func (r *Recorder) WithGroup(string) slog.Handler {
	return r
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), *r.entries...)
}

// Count returns how many records were logged at exactly level.
func (r *Recorder) Count(level slog.Level) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	*r.entries = (*r.entries)[:0]
	r.mu.Unlock()
}
