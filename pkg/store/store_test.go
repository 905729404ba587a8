package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/psaab/nvflat/pkg/generator"
)

func TestSaveAndLatest(t *testing.T) {
	s := New(t.TempDir(), 10)

	list := generator.CommandList{
		"nv set system hostname h1",
		"nv set service ssh",
	}
	snap, err := s.Save(list, "first run")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if snap.Path == "" || snap.Taken.IsZero() {
		t.Errorf("snapshot metadata incomplete: %+v", snap)
	}

	latest, ok := s.Latest()
	if !ok {
		t.Fatal("Latest: no snapshot")
	}
	if !reflect.DeepEqual(latest.Commands, list) {
		t.Errorf("latest commands = %q, want %q", latest.Commands, list)
	}
}

func TestRoundTripThroughDisk(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, 10)

	list := generator.CommandList{"nv set interface swp1 mtu 9000"}
	snap, err := s.Save(list, "mtu bump")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := ReadSnapshot(snap.Path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(got.Commands, list) {
		t.Errorf("commands = %q, want %q", got.Commands, list)
	}
	if got.Comment != "mtu bump" {
		t.Errorf("comment = %q", got.Comment)
	}
	if got.Taken.Sub(snap.Taken).Abs() > time.Second {
		t.Errorf("taken = %v, want ~%v", got.Taken, snap.Taken)
	}
}

func TestLoadExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	first := New(dir, 10)
	if _, err := first.Save(generator.CommandList{"nv set service ssh"}, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := first.Save(generator.CommandList{"nv set service ntp"}, "b"); err != nil {
		t.Fatal(err)
	}

	second := New(dir, 10)
	if err := second.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	snaps := second.List()
	if len(snaps) != 2 {
		t.Fatalf("loaded %d snapshots, want 2", len(snaps))
	}
	// most recent first
	if snaps[0].Comment != "b" || snaps[1].Comment != "a" {
		t.Errorf("order wrong: %q then %q", snaps[0].Comment, snaps[1].Comment)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"), 10)
	if err := s.Load(); err != nil {
		t.Errorf("missing dir should not error: %v", err)
	}
	if _, ok := s.Latest(); ok {
		t.Error("empty store reported a snapshot")
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, 2)
	for i := 0; i < 4; i++ {
		if _, err := s.Save(generator.CommandList{"nv set service ssh"}, ""); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("disk has %d snapshots, want 2", len(entries))
	}
	if s.history.Len() != 2 {
		t.Errorf("history has %d entries, want 2", s.history.Len())
	}
}

func TestReadSnapshotPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.set")
	contents := "nv set system hostname h1\nnv set service ssh\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(snap.Commands) != 2 {
		t.Errorf("commands = %q", snap.Commands)
	}
	if snap.Taken.IsZero() {
		t.Error("taken should fall back to file mtime")
	}
}

func TestHistoryOrdering(t *testing.T) {
	h := NewHistory(3)
	for _, c := range []string{"a", "b", "c", "d"} {
		h.Push(&Snapshot{Comment: c})
	}
	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	top, err := h.Get(0)
	if err != nil || top.Comment != "d" {
		t.Errorf("Get(0) = %+v, %v", top, err)
	}
	if _, err := h.Get(3); err == nil {
		t.Error("Get past end should error")
	}
	list := h.List()
	if list[0].Comment != "d" || list[2].Comment != "b" {
		t.Errorf("List order: %q %q %q", list[0].Comment, list[1].Comment, list[2].Comment)
	}
}
