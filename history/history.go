// SPDX-License-Identifier: MIT

// Package history keeps an ordered record of computed results.
//
// A History is an explicit value owned by its caller (a CLI session, a
// test, a server request); nothing in this module keeps one globally.
// Entries get time-ordered UUIDv7 identifiers so they sort by creation even
// when exported and merged.
//
// A History is not safe for concurrent mutation; callers that share one
// across goroutines must synchronise.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("history: entry not found")

// Entry is one recorded result.
//   - Label is a user-facing name ("A", "ans", "solve #3").
//   - Op names the operation that produced the result ("det", "eval A+B").
//   - Result is whatever the operation returned: a matrix.Matrix, a float64,
//     a linsys.Solution, ...
type Entry struct {
	ID      uuid.UUID `json:"id"`
	Label   string    `json:"label"`
	Op      string    `json:"op"`
	Result  any       `json:"result"`
	Created time.Time `json:"created"`
}

// History is an append-only list of entries, optionally capped.
type History struct {
	entries []Entry
	limit   int
	now     func() time.Time
}

// Option configures a History.
type Option func(*History)

// WithLimit keeps at most n most-recent entries. n ≤ 0 means unlimited.
func WithLimit(n int) Option {
	return func(h *History) { h.limit = n }
}

// WithClock overrides the timestamp source (tests).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("history: WithClock: nil clock")
	}

	return func(h *History) { h.now = now }
}

// New returns an empty History.
func New(opts ...Option) *History {
	h := &History{now: time.Now}
	for _, set := range opts {
		set(h)
	}

	return h
}

// Add records result and returns the new entry.
// When a limit is set, the oldest entries are dropped to make room.
func (h *History) Add(label, op string, result any) Entry {
	e := Entry{
		ID:      uuid.Must(uuid.NewV7()),
		Label:   label,
		Op:      op,
		Result:  result,
		Created: h.now(),
	}
	h.entries = append(h.entries, e)
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append(h.entries[:0:0], h.entries[drop:]...)
	}

	return e
}

// Last returns the most recent entry and true, or a zero Entry and false
// when the history is empty.
func (h *History) Last() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}

	return h.entries[len(h.entries)-1], true
}

// Get looks an entry up by id.
func (h *History) Get(id uuid.UUID) (Entry, error) {
	for _, e := range h.entries {
		if e.ID == id {
			return e, nil
		}
	}

	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Find returns the most recent entry carrying label.
func (h *History) Find(label string) (Entry, bool) {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i].Label == label {
			return h.entries[i], true
		}
	}

	return Entry{}, false
}

// All returns a copy of the entries, oldest first.
func (h *History) All() []Entry {
	return append([]Entry(nil), h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Clear removes every entry.
func (h *History) Clear() { h.entries = nil }
