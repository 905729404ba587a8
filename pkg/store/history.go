package store

import "fmt"

// History is a bounded, oldest-first buffer of snapshots kept in memory
// for quick listing and rollback-style lookup.
type History struct {
	entries []*Snapshot
	maxSize int
}

// NewHistory creates a History with the given maximum size.
func NewHistory(maxSize int) *History {
	return &History{maxSize: maxSize}
}

// Push adds a snapshot, evicting the oldest entry when full.
func (h *History) Push(s *Snapshot) {
	h.entries = append(h.entries, s)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
}

// Get returns the nth most recent snapshot (0 = most recent).
func (h *History) Get(n int) (*Snapshot, error) {
	if n < 0 || n >= len(h.entries) {
		return nil, fmt.Errorf("snapshot %d: no such entry (have %d)", n, len(h.entries))
	}
	return h.entries[len(h.entries)-1-n], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// List returns all snapshots, most recent first.
func (h *History) List() []*Snapshot {
	result := make([]*Snapshot, len(h.entries))
	for i, e := range h.entries {
		result[len(h.entries)-1-i] = e
	}
	return result
}
