// Package store persists generated command lists as timestamped
// snapshot files, with a bounded in-memory history for listing and
// diffing against earlier runs.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/psaab/nvflat/pkg/generator"
)

const snapshotExt = ".set"

// Snapshot is one saved command list.
type Snapshot struct {
	Path     string
	Taken    time.Time
	Comment  string
	Commands generator.CommandList
}

// Store manages the snapshot directory.
type Store struct {
	mu      sync.Mutex
	dir     string
	keep    int
	history *History
}

// New creates a Store over dir, retaining at most keep snapshots on
// disk and in history.
func New(dir string, keep int) *Store {
	if keep < 1 {
		keep = 1
	}
	return &Store{
		dir:     dir,
		keep:    keep,
		history: NewHistory(keep),
	}
}

// Load scans the snapshot directory into the history, oldest first.
// A missing directory is not an error; it is created on first Save.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read snapshot dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), snapshotExt) {
			names = append(names, e.Name())
		}
	}
	// snapshot names are timestamps, so name order is time order
	sort.Strings(names)

	for _, name := range names {
		snap, err := ReadSnapshot(filepath.Join(s.dir, name))
		if err != nil {
			return err
		}
		s.history.Push(snap)
	}
	return nil
}

// Save writes the command list as a new snapshot file and prunes disk
// and history beyond the retention limit.
func (s *Store) Save(list generator.CommandList, comment string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	snap := &Snapshot{
		Taken:    time.Now().UTC(),
		Comment:  comment,
		Commands: list,
	}
	snap.Path = filepath.Join(s.dir, snap.Taken.Format("20060102-150405.000000000")+snapshotExt)

	var b strings.Builder
	fmt.Fprintf(&b, "# taken %s\n", snap.Taken.Format(time.RFC3339Nano))
	if comment != "" {
		fmt.Fprintf(&b, "# comment %s\n", comment)
	}
	b.WriteString(list.Text())

	if err := os.WriteFile(snap.Path, []byte(b.String()), 0644); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	s.history.Push(snap)
	if err := s.prune(); err != nil {
		return nil, err
	}
	return snap, nil
}

// prune removes snapshot files beyond the retention limit, oldest first.
// Caller holds the lock.
func (s *Store) prune() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read snapshot dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), snapshotExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for len(names) > s.keep {
		if err := os.Remove(filepath.Join(s.dir, names[0])); err != nil {
			return fmt.Errorf("prune snapshot: %w", err)
		}
		names = names[1:]
	}
	return nil
}

// Latest returns the most recent snapshot, if any.
func (s *Store) Latest() (*Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.history.Get(0)
	return snap, err == nil
}

// Get returns the nth most recent snapshot (0 = most recent).
func (s *Store) Get(n int) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Get(n)
}

// List returns every known snapshot, most recent first.
func (s *Store) List() []*Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.List()
}

// ReadSnapshot parses a snapshot file. Lines starting with '#' are
// metadata; everything else is a command. The format is also tolerant of
// plain command files produced by redirecting nvflat output.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	snap := &Snapshot{Path: path}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.HasPrefix(line, "# taken "):
			if ts, err := time.Parse(time.RFC3339Nano, strings.TrimPrefix(line, "# taken ")); err == nil {
				snap.Taken = ts
			}
		case strings.HasPrefix(line, "# comment "):
			snap.Comment = strings.TrimPrefix(line, "# comment ")
		case strings.HasPrefix(line, "#"):
		default:
			snap.Commands = append(snap.Commands, generator.Command(line))
		}
	}

	if snap.Taken.IsZero() {
		if info, err := os.Stat(path); err == nil {
			snap.Taken = info.ModTime().UTC()
		}
	}
	return snap, nil
}
