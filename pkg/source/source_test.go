package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommandSource(t *testing.T) {
	s := NewCommandSource([]string{"sh", "-c", "echo 'system: {hostname: h1}'"})
	out, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "system: {hostname: h1}" {
		t.Errorf("stdout = %q", got)
	}
}

func TestCommandSourceFailure(t *testing.T) {
	s := NewCommandSource([]string{"sh", "-c", "echo boom >&2; exit 3"})
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for nonzero exit")
	} else if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should carry stderr: %v", err)
	}
}

func TestCommandSourceMissingBinary(t *testing.T) {
	s := NewCommandSource([]string{"definitely-not-a-real-binary-2718"})
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing executable")
	}
}

func TestCommandSourceDefault(t *testing.T) {
	s := NewCommandSource(nil)
	if s.Command != "nv" {
		t.Errorf("default command = %q, want nv", s.Command)
	}
	if got := s.String(); got != "nv config show --output yaml" {
		t.Errorf("String = %q", got)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("service:\n  ssh: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s := &FileSource{Path: path}
	out, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(string(out), "ssh") {
		t.Errorf("unexpected contents: %q", out)
	}

	if _, err := (&FileSource{Path: filepath.Join(t.TempDir(), "missing")}).Fetch(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileSourceStdin(t *testing.T) {
	s := &FileSource{Path: "-", Stdin: strings.NewReader("system: {}\n")}
	out, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(out) != "system: {}\n" {
		t.Errorf("stdin contents = %q", out)
	}
}
